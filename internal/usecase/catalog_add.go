package usecase

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dcx-tools/dcx/internal/domain"
	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

// CatalogAddUseCase imports a DDL source and stores the resulting contract
// in the local catalog. Re-importing under an existing key bumps the stored
// version according to how the model shape changed. When a GitLog is
// configured the new revision is committed.

type CatalogAddUseCase struct {
	SourceRepo  repository.SourceRepository
	ImportSvc   service.ImportService
	ExportSvc   service.ExportService
	CatalogRepo repository.CatalogRepository
	GitLog      repository.GitLogRepository

	Source  string
	Key     string
	Options service.ImportOptions
}

// Execute runs the use case and returns the stored catalog entry.
func (uc *CatalogAddUseCase) Execute(ctx context.Context) (*domain.CatalogEntry, error) {
	sql, err := uc.SourceRepo.Read(ctx, uc.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	contract, err := uc.ImportSvc.ImportDataContract(ctx, sql, uc.Options)
	if err != nil {
		return nil, err
	}
	key := uc.Key
	if key == "" {
		key = repository.CatalogKey(contract.Info.Title)
	}
	if key == "" {
		return nil, fmt.Errorf("cannot derive a catalog key from contract title %q", contract.Info.Title)
	}
	if err := uc.resolveVersion(ctx, key, contract); err != nil {
		return nil, err
	}
	document, err := uc.ExportSvc.ExportDataContract(ctx, contract, service.FormatYAML)
	if err != nil {
		return nil, err
	}
	entry := &domain.CatalogEntry{
		Key:        key,
		ContractID: contract.ID,
		Title:      contract.Info.Title,
		Version:    contract.Info.Version,
		Dialect:    string(uc.Options.Dialect),
		Source:     uc.Source,
		StoredAt:   time.Now().UTC(),
	}
	if err := uc.CatalogRepo.Save(ctx, entry, document); err != nil {
		return nil, fmt.Errorf("failed to store contract: %w", err)
	}
	if uc.GitLog != nil {
		message := fmt.Sprintf("catalog: store %s %s", entry.Key, entry.Version)
		if _, err := uc.GitLog.CommitAll(ctx, message); err != nil {
			return nil, fmt.Errorf("failed to commit catalog revision: %w", err)
		}
	}
	return entry, nil
}

// resolveVersion reconciles the imported contract version with the revision
// already stored under key, if any. An explicit --contract-version must
// advance the stored version; otherwise the stored version is bumped by how
// much the model shape changed.
func (uc *CatalogAddUseCase) resolveVersion(ctx context.Context, key string, contract *domain.DataContract) error {
	exists, err := uc.CatalogRepo.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check catalog for %s: %w", key, err)
	}
	if !exists {
		return nil
	}
	storedEntry, storedDoc, err := uc.CatalogRepo.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load stored contract %s: %w", key, err)
	}
	storedVersion, err := domain.NewContractVersion(storedEntry.Version)
	if err != nil {
		// Stored versions predating semver enforcement are replaced as-is.
		return nil
	}
	if uc.Options.Version != "" {
		pinned, err := domain.NewContractVersion(uc.Options.Version)
		if err != nil {
			return fmt.Errorf("invalid contract version %q: %w", uc.Options.Version, err)
		}
		if pinned.Compare(storedVersion) <= 0 {
			return fmt.Errorf("contract version %s does not advance stored version %s",
				pinned, storedVersion)
		}
		return nil
	}
	var stored domain.DataContract
	if err := yaml.Unmarshal(storedDoc, &stored); err != nil {
		return fmt.Errorf("failed to decode stored contract %s: %w", key, err)
	}
	next := storedVersion
	switch domain.CompareModelShapes(stored.Models, contract.Models) {
	case domain.ModelChangeBreaking:
		next = storedVersion.BumpMajor()
	case domain.ModelChangeAdditive:
		next = storedVersion.BumpMinor()
	case domain.ModelChangePatch:
		next = storedVersion.BumpPatch()
	}
	contract.Info.Version = next.String()
	return nil
}
