package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	logpkg "github.com/kailas-cloud/cyync-lookup/internal/logger"
	"github.com/kailas-cloud/cyync-lookup/internal/transport/cyync"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/executor"
	"github.com/kailas-cloud/cyync-lookup/internal/version"
)

const defaultPause = 100 * time.Millisecond

type flags struct {
	url          string
	accessToken  string
	roleID       string
	workspaceIDs string
	searchScopes string
	searchLimit  int
	entity       int
	allEntities  bool
	output       string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	var f flags
	cmd := &cobra.Command{
		Use:          "query-runner",
		Short:        "Search CYYNC for sample entities and record the raw results",
		Version:      version.String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f, sampleEntities)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.url, "url", "https://staging.cyync.com", "URL of the CYYNC instance")
	fs.StringVar(&f.accessToken, "accessToken", os.Getenv("CYYNC_ACCESS_TOKEN"), "access token (env CYYNC_ACCESS_TOKEN)")
	fs.StringVar(&f.roleID, "roleId", os.Getenv("CYYNC_ROLE_ID"), "role ID for the API calls (env CYYNC_ROLE_ID)")
	fs.StringVar(&f.workspaceIDs, "workspaceIds", "", "comma-separated workspace IDs to search")
	fs.StringVar(&f.searchScopes, "searchScopes", "assets,forms", "comma-separated search scopes (assets,forms,pages,tasks)")
	fs.IntVar(&f.searchLimit, "searchLimit", domain.DefaultSearchLimit, "maximum results per scope")
	fs.IntVar(&f.entity, "entity", 0, "index of the sample entity to test")
	fs.BoolVar(&f.allEntities, "all-entities", false, "test every sample entity")
	fs.StringVarP(&f.output, "output", "o", "cyync-query-results.json", "file the JSON records are appended to")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level for request tracing")

	return cmd
}

func (f flags) options() (domain.Options, error) {
	if f.accessToken == "" {
		return domain.Options{}, errors.New("--accessToken is required")
	}
	if f.roleID == "" {
		return domain.Options{}, errors.New("--roleId is required")
	}
	ids := domain.ParseWorkspaceIDs(f.workspaceIDs)
	if len(ids) == 0 {
		return domain.Options{}, errors.New("--workspaceIds is required (comma-separated)")
	}
	if f.searchLimit <= 0 {
		return domain.Options{}, fmt.Errorf("--searchLimit must be positive, got %d", f.searchLimit)
	}
	return domain.Options{
		WorkspaceIDs: ids,
		SearchScopes: domain.ParseSearchScopes(f.searchScopes),
		SearchLimit:  f.searchLimit,
	}, nil
}

func run(cmd *cobra.Command, f flags, entities []domain.Entity) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	if !f.allEntities && (f.entity < 0 || f.entity >= len(entities)) {
		return fmt.Errorf("entity at index %d not found, available: 0-%d", f.entity, len(entities)-1)
	}

	logger, err := logpkg.NewLogger("local", f.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	file, err := openResultsFile(f.output, time.Now)
	if err != nil {
		return err
	}

	client := cyync.New(&cyync.Config{
		URL:         f.url,
		AccessToken: f.accessToken,
		RoleID:      f.roleID,
		Logger:      logger,
	})
	r := &runner{
		exec:  executor.New(client, logger),
		opts:  opts,
		out:   cmd.OutOrStdout(),
		file:  file,
		now:   time.Now,
		pause: defaultPause,
	}

	r.logf("CYYNC Query Runner Started")
	logger.Debug("query runner options",
		zap.String("url", f.url),
		logpkg.Secret("access_token", f.accessToken),
		zap.Strings("workspace_ids", opts.WorkspaceIDs),
		zap.Strings("search_scopes", opts.SearchScopes.Values()),
		zap.Int("search_limit", opts.SearchLimit),
	)

	ctx := cmd.Context()
	if f.allEntities {
		_, err = r.testAll(ctx, entities)
	} else {
		_, err = r.testEntity(ctx, entities[f.entity])
	}
	if err != nil {
		r.logf("CYYNC Query Runner Failed: %v", err)
		_ = file.Append(map[string]string{"error": err.Error()})
		return err
	}

	r.logf("CYYNC Query Runner Completed Successfully")
	return nil
}
