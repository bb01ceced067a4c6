package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tantractl",
		Short:         "Command-line tools for the Tantra admin database",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./tantra.yaml if present)")
	pf.String("mongo_uri", "mongodb://localhost:27017", "MongoDB connection URI")
	pf.String("mongo_database", "tantra", "MongoDB database name")
	pf.String("store_backend", "mongo", "document store: 'mongo' or 'memory'")
	pf.Bool("verbose", false, "log pipeline activity to stderr")

	root.AddCommand(newExportCmd(), newNextEventIDCmd(), newSummaryCmd())
	return root
}

// initConfig layers configuration: flags > TANTRA_* env (including .env) >
// config file > flag defaults.
func initConfig(cmd *cobra.Command) error {
	_ = godotenv.Load()

	viper.SetEnvPrefix("TANTRA")
	viper.AutomaticEnv()
	viper.SetDefault("export_formats", "xlsx,pdf")
	viper.SetDefault("export_filename_base", "tantra")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("tantra")
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func newLogger() *zap.Logger {
	if !viper.GetBool("verbose") {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openStore connects to the configured store. Tests replace it.
var openStore = func(ctx context.Context, logger *zap.Logger) (docstore.Store, func(), error) {
	if viper.GetString("store_backend") == "memory" {
		logger.Warn("using an empty in-memory store")
		return docstore.NewMemory(), func() {}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(viper.GetString("mongo_uri")))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	closer := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}
	db := client.Database(viper.GetString("mongo_database"))
	return docstore.NewMongo(db), closer, nil
}
