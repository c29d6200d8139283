package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

type mockSourceRepository struct {
	mock.Mock
}

func (m *mockSourceRepository) Read(ctx context.Context, source string) (string, error) {
	args := m.Called(ctx, source)
	return args.String(0), args.Error(1)
}

type mockImportService struct {
	mock.Mock
}

func (m *mockImportService) ImportDataContract(ctx context.Context, sql string, opts service.ImportOptions) (*domain.DataContract, error) {
	args := m.Called(ctx, sql, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataContract), args.Error(1)
}

func (m *mockImportService) ImportOpenDataContract(ctx context.Context, sql string, opts service.ImportOptions) (*domain.OpenDataContract, error) {
	args := m.Called(ctx, sql, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpenDataContract), args.Error(1)
}

type mockExportService struct {
	mock.Mock
}

func (m *mockExportService) ExportDataContract(ctx context.Context, contract *domain.DataContract, format service.ExportFormat) ([]byte, error) {
	args := m.Called(ctx, contract, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockExportService) ExportOpenDataContract(ctx context.Context, contract *domain.OpenDataContract, format service.ExportFormat) ([]byte, error) {
	args := m.Called(ctx, contract, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockLintService struct {
	mock.Mock
}

func (m *mockLintService) Lint(ctx context.Context, contract *domain.DataContract) (service.LintResult, error) {
	args := m.Called(ctx, contract)
	return args.Get(0).(service.LintResult), args.Error(1)
}

type mockCheckService struct {
	mock.Mock
}

func (m *mockCheckService) CheckFixture(ctx context.Context, sql string) (service.CheckReport, error) {
	args := m.Called(ctx, sql)
	return args.Get(0).(service.CheckReport), args.Error(1)
}

type mockCatalogRepository struct {
	mock.Mock
}

func (m *mockCatalogRepository) Save(ctx context.Context, entry *domain.CatalogEntry, contract []byte) error {
	args := m.Called(ctx, entry, contract)
	return args.Error(0)
}

func (m *mockCatalogRepository) Load(ctx context.Context, key string) (*domain.CatalogEntry, []byte, error) {
	args := m.Called(ctx, key)
	var entry *domain.CatalogEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.CatalogEntry)
	}
	var contract []byte
	if args.Get(1) != nil {
		contract = args.Get(1).([]byte)
	}
	return entry, contract, args.Error(2)
}

func (m *mockCatalogRepository) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogEntry), args.Error(1)
}

func (m *mockCatalogRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCatalogRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type mockGitLogRepository struct {
	mock.Mock
}

func (m *mockGitLogRepository) CommitAll(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *mockGitLogRepository) History(ctx context.Context, limit int) ([]repository.CommitSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CommitSummary), args.Error(1)
}
