package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	playerTimeout  time.Duration
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool

	hostCode       string
	vowelCost      int
	finalSeconds   int
	finalJackpot   int
	tossupAward    int
	tossupInterval time.Duration
	prizeValues    []int
	puzzleFile     string
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.hostCode == "" {
		return errors.New("--host-code must not be empty")
	}
	if c.vowelCost < 0 {
		return fmt.Errorf("invalid vowel cost: %d", c.vowelCost)
	}
	if c.finalSeconds < 1 {
		return fmt.Errorf("invalid final round duration: %d", c.finalSeconds)
	}
	if c.finalJackpot < 0 {
		return fmt.Errorf("invalid final jackpot: %d", c.finalJackpot)
	}
	if c.tossupAward < 0 {
		return fmt.Errorf("invalid toss-up award: %d", c.tossupAward)
	}
	if c.tossupInterval <= 0 {
		return fmt.Errorf("invalid toss-up reveal interval: %s", c.tossupInterval)
	}
	for _, v := range c.prizeValues {
		if v <= 0 {
			return fmt.Errorf("invalid prize value: %d", v)
		}
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// gameConfig derives the per-room starting game config from the flags.
func (c *Config) gameConfig() gameConfig {
	gc := defaultGameConfig()
	gc.VowelCost = c.vowelCost
	gc.FinalSeconds = c.finalSeconds
	gc.FinalJackpot = c.finalJackpot
	gc.TossupAward = c.tossupAward
	if len(c.prizeValues) > 0 {
		gc.PrizeValues = c.prizeValues
	}
	return gc
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WHEELPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "wheelparty",
		Short:         "A server-authoritative multiplayer wheel-spin word game, played in shared rooms.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	defaults := defaultGameConfig()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: WHEELPARTY_BIND)")
	fs.DurationVar(&cfg.playerTimeout, "player-timeout", 10*time.Minute, "time before disconnected players are removed from their room (env: WHEELPARTY_PLAYER_TIMEOUT)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: WHEELPARTY_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: WHEELPARTY_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: WHEELPARTY_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle rooms are ended (env: WHEELPARTY_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: WHEELPARTY_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: WHEELPARTY_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: WHEELPARTY_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: WHEELPARTY_VERSION)")

	fs.StringVar(&cfg.hostCode, "host-code", "holiday", "code required to claim host controls in a room (env: WHEELPARTY_HOST_CODE)")
	fs.IntVar(&cfg.vowelCost, "vowel-cost", defaults.VowelCost, "cost of buying a vowel (env: WHEELPARTY_VOWEL_COST)")
	fs.IntVar(&cfg.finalSeconds, "final-seconds", defaults.FinalSeconds, "final round countdown in seconds (env: WHEELPARTY_FINAL_SECONDS)")
	fs.IntVar(&cfg.finalJackpot, "final-jackpot", defaults.FinalJackpot, "final round jackpot (env: WHEELPARTY_FINAL_JACKPOT)")
	fs.IntVar(&cfg.tossupAward, "tossup-award", defaults.TossupAward, "cash awarded for winning a toss-up (env: WHEELPARTY_TOSSUP_AWARD)")
	fs.DurationVar(&cfg.tossupInterval, "tossup-interval", 1200*time.Millisecond, "cadence of automatic toss-up letter reveals (env: WHEELPARTY_TOSSUP_INTERVAL)")
	fs.IntSliceVar(&cfg.prizeValues, "prize-values", defaults.PrizeValues, "cash values drawn for banked prizes and prize wedge replacement (env: WHEELPARTY_PRIZE_VALUES)")
	fs.StringVar(&cfg.puzzleFile, "puzzle-file", "", "path to a category|answer puzzle list, replacing the built-in puzzles (env: WHEELPARTY_PUZZLE_FILE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("wheelparty v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
