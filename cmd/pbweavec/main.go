// pbweavec generates Go serialization code from protobuf schemas.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbweave/pbweave/gen"
	"github.com/pbweave/pbweave/registry"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "pbweavec",
		Short:         "Protobuf code generator for the pbweave runtime",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newListCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		cfg        genConfig
	)

	cmd := &cobra.Command{
		Use:   "generate [flags] [proto files or dirs...]",
		Short: "Generate Go code from .proto files or a compiled descriptor set",
		Long: `Generate Go code implementing the pbweave wire contract.

Sources may be .proto files, directories of .proto files, or compiled
descriptor sets (.binpb). Every file is rendered before anything is
written, so a failing schema leaves the output directory untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := loadConfigFile(configPath, &cfg); err != nil {
					return err
				}
			}
			cfg.SrcPaths = append(cfg.SrcPaths, args...)

			opts := gen.NewOptions().
				WithOutPath(cfg.OutPath).
				WithSrcPaths(cfg.SrcPaths...).
				WithIncludePaths(cfg.IncludePaths...).
				WithPackageName(cfg.PackageName).
				WithCleanupOutPath(cfg.Cleanup)

			g, err := gen.New(opts)
			if err != nil {
				return err
			}
			log.WithField("messages", len(g.Registry().ListMessages())).Debug("schemas loaded")

			written, err := g.Run()
			if err != nil {
				return err
			}
			for _, path := range written {
				log.WithField("file", path).Info("generated")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&cfg.OutPath, "out", "o", "", "output directory")
	cmd.Flags().StringArrayVarP(&cfg.IncludePaths, "include", "I", nil, "import resolution roots")
	cmd.Flags().StringVar(&cfg.PackageName, "package", "", "Go package name for generated files")
	cmd.Flags().BoolVar(&cfg.Cleanup, "cleanup", false, "remove stale generated files from the output directory first")
	return cmd
}

func newListCmd() *cobra.Command {
	var includePaths []string

	cmd := &cobra.Command{
		Use:   "list [proto files or dirs...]",
		Short: "List the messages, enums, and services a schema defines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.NewRegistry()
			reg.ProtoDirectories = includePaths
			for _, src := range args {
				if err := reg.LoadSchema(src); err != nil {
					return err
				}
			}
			for _, name := range reg.ListMessages() {
				fmt.Fprintf(cmd.OutOrStdout(), "message %s\n", name)
			}
			for _, name := range reg.ListEnums() {
				fmt.Fprintf(cmd.OutOrStdout(), "enum %s\n", name)
			}
			for _, name := range reg.ListServices() {
				fmt.Fprintf(cmd.OutOrStdout(), "service %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&includePaths, "include", "I", nil, "import resolution roots")
	return cmd
}
