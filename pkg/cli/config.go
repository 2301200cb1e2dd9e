package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/adapter"
	"github.com/reelid/reelid/pkg/repository"
	"github.com/reelid/reelid/pkg/usecase/movie"
	"github.com/reelid/reelid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const defaultPredictURL = "https://lychee-fruit-kh3h87av9lsw5d2k.salad.cloud"

// config holds configuration values
type config struct {
	// Repository
	project  string
	database string

	// Prediction service
	predictURL string

	// Session
	uid      string
	username string
	idToken  string

	logLevel   string
	configPath string
}

// fileConfig is the optional YAML config file; flags and env take precedence
type fileConfig struct {
	Project    string `yaml:"project"`
	Database   string `yaml:"database"`
	PredictURL string `yaml:"predict_url"`
	UID        string `yaml:"uid"`
	Username   string `yaml:"username"`
	LogLevel   string `yaml:"log_level"`
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "predict-url",
			Usage:       "Base URL of the prediction service",
			Value:       defaultPredictURL,
			Sources:     cli.EnvVars("REELID_PREDICT_URL"),
			Destination: &cfg.predictURL,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("REELID_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML config file",
			Sources:     cli.EnvVars("REELID_CONFIG"),
			Destination: &cfg.configPath,
		},
	}
}

// sessionFlags returns flags describing the signed-in identity
func sessionFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "uid",
			Usage:       "User ID of the signed-in account",
			Sources:     cli.EnvVars("REELID_UID"),
			Destination: &cfg.uid,
		},
		&cli.StringFlag{
			Name:        "username",
			Usage:       "Display name of the signed-in account",
			Sources:     cli.EnvVars("REELID_USERNAME"),
			Destination: &cfg.username,
		},
		&cli.StringFlag{
			Name:        "id-token",
			Usage:       "Identity token for the prediction service",
			Sources:     cli.EnvVars("REELID_ID_TOKEN"),
			Destination: &cfg.idToken,
		},
	}
}

// setup merges the optional config file under the flags and attaches a
// configured logger to the context
func (cfg *config) setup(ctx context.Context) (context.Context, error) {
	if cfg.configPath != "" {
		data, err := os.ReadFile(cfg.configPath)
		if err != nil {
			return ctx, goerr.Wrap(err, "failed to read config file", goerr.V("path", cfg.configPath))
		}

		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return ctx, goerr.Wrap(err, "failed to parse config file", goerr.V("path", cfg.configPath))
		}

		if cfg.project == "" {
			cfg.project = file.Project
		}
		if cfg.database == "" || cfg.database == "(default)" {
			if file.Database != "" {
				cfg.database = file.Database
			}
		}
		if cfg.predictURL == defaultPredictURL && file.PredictURL != "" {
			cfg.predictURL = file.PredictURL
		}
		if cfg.uid == "" {
			cfg.uid = file.UID
		}
		if cfg.username == "" {
			cfg.username = file.Username
		}
		if file.LogLevel != "" && cfg.logLevel == "info" {
			cfg.logLevel = file.LogLevel
		}
	}

	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger), nil
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (*repository.Firestore, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newPredictor creates a prediction service client
func (cfg *config) newPredictor() adapter.Predictor {
	return adapter.NewPredictor(cfg.predictURL)
}

// newSession builds the session from flag-supplied identity
func (cfg *config) newSession() (adapter.Session, error) {
	if cfg.uid == "" {
		return nil, goerr.New("uid is required")
	}
	return &adapter.StaticSession{
		UserID: cfg.uid,
		Name:   cfg.username,
		Token:  cfg.idToken,
	}, nil
}

// newEnricher wires the metadata lookup and enricher on top of repo
func newEnricher(repo *repository.Firestore) *movie.Enricher {
	return movie.NewEnricher(movie.NewLookup(repo))
}
