package cmd

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/dcx-tools/dcx/internal/config"
	"github.com/dcx-tools/dcx/internal/logging"
	"github.com/dcx-tools/dcx/internal/repository"
	"github.com/dcx-tools/dcx/internal/service"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo      repository.FileSystemRepository
	sourceRepo  repository.SourceRepository
	catalogRepo repository.CatalogRepository
	stateRepo   repository.StateRepository
	gitLog      repository.GitLogRepository

	importSvc service.ImportService
	exportSvc service.ExportService
	lintSvc   service.LintService
	checkSvc  service.CheckService
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(logging.Options{
		Level:  cfg.LogLevel,
		LogDir: cfg.LogDir,
	})
	if err != nil {
		return nil, err
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	sourceRepo := repository.NewSourceRepository(fsRepo, cfg.FetchRetries)
	catalogRepo := repository.NewFileCatalogRepository(fsRepo, cfg.CatalogDir)
	stateRepo := repository.NewFileStateRepository(fsRepo, cfg.StateDir)

	return &container{
		cfg:         cfg,
		logger:      logger,
		fsRepo:      fsRepo,
		sourceRepo:  sourceRepo,
		catalogRepo: catalogRepo,
		stateRepo:   stateRepo,
		importSvc:   service.NewImportService(logger),
		exportSvc:   service.NewExportService(),
		lintSvc:     service.NewLintService(),
		checkSvc:    service.NewCheckService(logger),
	}, nil
}

// gitLogRepo lazily opens the catalog git repository. Commands that never
// touch the catalog must not create it as a side effect.
func (c *container) gitLogRepo() (repository.GitLogRepository, error) {
	if !c.cfg.CatalogGit {
		return nil, nil
	}
	if c.gitLog == nil {
		gitLog, err := repository.NewGitLogRepository(c.cfg.CatalogDir)
		if err != nil {
			return nil, err
		}
		c.gitLog = gitLog
	}
	return c.gitLog, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(NewImportCmd(c))
	rootCmd.AddCommand(NewExportCmd(c))
	rootCmd.AddCommand(NewLintCmd(c))
	rootCmd.AddCommand(NewCheckCmd(c))
	rootCmd.AddCommand(NewCatalogCmd(c))
	rootCmd.AddCommand(NewPipelineCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
