package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/klemjul/nodepulse/internal/app"
	"github.com/klemjul/nodepulse/internal/bot"
	"github.com/klemjul/nodepulse/internal/config"
	"github.com/klemjul/nodepulse/internal/llm"
	"github.com/klemjul/nodepulse/internal/logging"
	"github.com/klemjul/nodepulse/internal/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RootCommand(app app.App) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "nodepulse",
		Short: "Keep a chat completion node active with a steady flow of synthetic conversations.",
		Args:  cobra.NoArgs,
		Example: `
NODE_ID=0x1234 nodepulse   # Send to https://0x1234.gaia.domains/v1/chat/completions
nodepulse --node-id 0x1234 --max-retries 5 --retry-pause 2
nodepulse --node-id 0x1234 --provider openai --model llama --metrics-addr :9100
	`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validate(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, app)
		},
	}

	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().String("node-id", "",
		fmt.Sprintf("Identifier of the node to keep active. (env: %s)", config.ENV_NODE_ID))
	rootCmd.Flags().String("domain", config.DEFAULT_DOMAIN,
		fmt.Sprintf("Domain hosting the node endpoints. (env: %s)", config.ENV_DOMAIN))
	rootCmd.Flags().String("max-retries", fmt.Sprint(config.DEFAULT_MAX_RETRIES),
		fmt.Sprintf("Attempts per conversation before it is dropped. (env: %s)", config.ENV_MAX_RETRIES))
	rootCmd.Flags().String("retry-pause", fmt.Sprint(config.DEFAULT_RETRY_PAUSE),
		fmt.Sprintf("Base pause in seconds, multiplied by the attempt number. (env: %s)", config.ENV_RETRY_PAUSE))
	rootCmd.Flags().String("request-timeout", fmt.Sprint(config.DEFAULT_REQUEST_TIMEOUT),
		fmt.Sprintf("Request timeout in seconds, 0 disables it. (env: %s)", config.ENV_REQUEST_TIMEOUT))
	rootCmd.Flags().String("phrases", config.DEFAULT_PHRASES_FILE,
		fmt.Sprintf("Phrase file, one phrase per line. (env: %s)", config.ENV_PHRASES_FILE))
	rootCmd.Flags().String("log-file", config.DEFAULT_LOG_FILE,
		fmt.Sprintf("Log file appended next to console output, empty to disable. (env: %s)", config.ENV_LOG_FILE))
	rootCmd.Flags().String("log-level", config.DEFAULT_LOG_LEVEL,
		fmt.Sprintf("Log level: debug, info, warn or error. (env: %s)", config.ENV_LOG_LEVEL))
	rootCmd.Flags().String("provider", config.DEFAULT_PROVIDER,
		fmt.Sprintf("Transport to use: %v. (env: %s)", llm.LLMProviders, config.ENV_PROVIDER))
	rootCmd.Flags().String("model", "",
		fmt.Sprintf("Model name sent by the openai provider. (env: %s)", config.ENV_MODEL))
	rootCmd.Flags().String("seed", "0",
		fmt.Sprintf("Random seed, 0 seeds from the clock. (env: %s)", config.ENV_SEED))
	rootCmd.Flags().String("metrics-addr", "",
		fmt.Sprintf("Address serving Prometheus metrics, empty to disable. (env: %s)", config.ENV_METRICS_ADDR))

	v.BindPFlag(config.ENV_NODE_ID, rootCmd.Flags().Lookup("node-id"))
	v.BindPFlag(config.ENV_DOMAIN, rootCmd.Flags().Lookup("domain"))
	v.BindPFlag(config.ENV_MAX_RETRIES, rootCmd.Flags().Lookup("max-retries"))
	v.BindPFlag(config.ENV_RETRY_PAUSE, rootCmd.Flags().Lookup("retry-pause"))
	v.BindPFlag(config.ENV_REQUEST_TIMEOUT, rootCmd.Flags().Lookup("request-timeout"))
	v.BindPFlag(config.ENV_PHRASES_FILE, rootCmd.Flags().Lookup("phrases"))
	v.BindPFlag(config.ENV_LOG_FILE, rootCmd.Flags().Lookup("log-file"))
	v.BindPFlag(config.ENV_LOG_LEVEL, rootCmd.Flags().Lookup("log-level"))
	v.BindPFlag(config.ENV_PROVIDER, rootCmd.Flags().Lookup("provider"))
	v.BindPFlag(config.ENV_MODEL, rootCmd.Flags().Lookup("model"))
	v.BindPFlag(config.ENV_SEED, rootCmd.Flags().Lookup("seed"))
	v.BindPFlag(config.ENV_METRICS_ADDR, rootCmd.Flags().Lookup("metrics-addr"))

	v.AllowEmptyEnv(true)
	for _, key := range config.Keys {
		v.BindEnv(key)
	}

	return rootCmd
}

func validate(v *viper.Viper) error {
	provider := v.GetString(config.ENV_PROVIDER)
	if provider == "" {
		provider = config.DEFAULT_PROVIDER
	}
	if !slices.Contains(llm.LLMProviders, llm.LLMProvider(provider)) {
		return fmt.Errorf("%w: invalid provider '%s'. Valid providers are: %v", config.ErrConfiguration, provider, llm.LLMProviders)
	}
	return nil
}

func run(cmd *cobra.Command, v *viper.Viper, app app.App) error {
	cmd.SilenceUsage = true

	logger, logCloser, err := logging.New(
		cmd.OutOrStdout(),
		v.GetString(config.ENV_LOG_FILE),
		logging.ParseLevel(v.GetString(config.ENV_LOG_LEVEL)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}
	defer logCloser.Close()

	cfg, err := config.Load(v, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("❌ %v", err))
		return err
	}

	phrases, err := app.Phrases().Load(cfg.PhrasesFile)
	if err != nil {
		logger.Error(fmt.Sprintf("❌ %v", err))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		m.Serve(ctx, cfg.MetricsAddr, logger)
	}

	client, err := app.LLM().NewClient(llm.LLMProvider(cfg.Provider), llm.LLMClientOptions{
		BaseURL: cfg.BaseURL(),
		Model:   cfg.Model,
		Timeout: cfg.RequestTimeout(),
	})
	if err != nil {
		logger.Error(fmt.Sprintf("❌ failed to create LLM client: %v", err))
		return fmt.Errorf("failed to create LLM client: %v", err)
	}

	logger.Info("🎯 Target node", "endpoint", cfg.Endpoint(), "provider", cfg.Provider,
		"max_retries", cfg.MaxRetries, "retry_pause", cfg.RetryPause(), "phrases", len(phrases))

	rng := llm.NewRand(cfg.Seed)
	loop := bot.NewLoop(bot.LoopOptions{
		Client:  client,
		Builder: llm.NewDialogBuilder(phrases, rng),
		Executor: bot.NewExecutor(bot.ExecutorOptions{
			Client:     client,
			Recorder:   bot.NewLogRecorder(logger),
			Metrics:    m,
			Logger:     logger,
			MaxRetries: cfg.MaxRetries,
			RetryPause: cfg.RetryPause(),
		}),
		Metrics: m,
		Logger:  logger,
		Rand:    rng,
	})

	if err := loop.Run(ctx); err != nil {
		logger.Error(fmt.Sprintf("💥 Critical failure: %v", err))
		return err
	}
	return nil
}
