package coremain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/go-viper/mapstructure/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/pmkol/sllist/mlog"
)

var version = "dev"

type runFlags struct {
	c     string
	dir   string
	watch bool
}

var rootCmd = &cobra.Command{
	Use: "sllist",
}

func init() {
	rf := new(runFlags)
	runCmd := &cobra.Command{
		Use:   "run [-c script_file] [-d working_dir]",
		Short: "Run a list script.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return StartRun(cmd.Context(), rf, cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	rootCmd.AddCommand(runCmd)
	fs := runCmd.Flags()
	fs.StringVarP(&rf.c, "config", "c", "", "script file")
	fs.StringVarP(&rf.dir, "dir", "d", "", "working dir")
	fs.BoolVarP(&rf.watch, "watch", "w", false, "re-run the script when it changes")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
}

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func StartRun(ctx context.Context, rf *runFlags, out io.Writer) error {
	if len(rf.dir) > 0 {
		err := os.Chdir(rf.dir)
		if err != nil {
			return fmt.Errorf("failed to change the current working directory, %w", err)
		}
		mlog.L().Info("working directory changed", zap.String("path", rf.dir))
	}

	cfg, fileUsed, err := loadScript(rf.c)
	if err != nil {
		return err
	}

	lg, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer lg.Sync()
	if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		mlog.SetLevel(lvl)
	}

	reg := newMetricsReg()
	m := newMetrics(reg)

	if !rf.watch {
		return RunScript(cfg, lg, out, m)
	}

	if err := RunScript(cfg, lg, out, m); err != nil {
		lg.Error("script failed", zap.String("file", fileUsed), zap.Error(err))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchScript(ctx, fileUsed, lg, func() {
			cfg, _, err := loadScript(fileUsed)
			if err != nil {
				lg.Error("failed to reload script", zap.Error(err))
				return
			}
			if err := RunScript(cfg, lg, out, m); err != nil {
				lg.Error("script failed", zap.String("file", fileUsed), zap.Error(err))
			}
		})
	})

	if httpAddr := cfg.API.HTTP; len(httpAddr) > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		httpServer := &http.Server{
			Addr:    httpAddr,
			Handler: mux,
		}
		g.Go(func() error {
			lg.Info("starting api http server", zap.String("addr", httpAddr))
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("api http server exited, %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return httpServer.Close()
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadScript loads a script and all its includes.
func loadScript(filePath string) (*Config, string, error) {
	cfg, fileUsed, err := loadConfig(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("fail to load script, %w", err)
	}
	if err := mergeInclude(cfg, 0, []string{fileUsed}); err != nil {
		return nil, "", fmt.Errorf("failed to load sub script file, %w", err)
	}
	return cfg, fileUsed, nil
}

// loadConfig load a config from a file. If filePath is empty, it will
// automatically search and load a file which name start with "script".
func loadConfig(filePath string) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("script")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

func mergeInclude(cfg *Config, depth int, paths []string) error {
	depth++
	if depth > 8 {
		return fmt.Errorf("maximum include depth reached, include path is %s", strings.Join(paths, " -> "))
	}

	var included []StepConfig
	for _, subCfgFile := range cfg.Include {
		subPaths := slices.Concat(paths, []string{subCfgFile})
		mlog.L().Info("reading sub script", zap.String("file", subCfgFile))
		subCfg, _, err := loadConfig(subCfgFile)
		if err != nil {
			return fmt.Errorf("failed to load sub config, %w", err)
		}
		if err := mergeInclude(subCfg, depth, subPaths); err != nil {
			return err
		}
		included = append(included, subCfg.Steps...)
	}

	cfg.Steps = append(included, cfg.Steps...)
	return nil
}
