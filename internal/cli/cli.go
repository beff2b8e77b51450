package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/nuscanoeing/canoebot/internal/attendance"
	"github.com/nuscanoeing/canoebot/internal/boat"
	"github.com/nuscanoeing/canoebot/internal/bot"
	"github.com/nuscanoeing/canoebot/internal/config"
	"github.com/nuscanoeing/canoebot/internal/logger"
	"github.com/nuscanoeing/canoebot/internal/quote"
	"github.com/nuscanoeing/canoebot/internal/render"
	"github.com/nuscanoeing/canoebot/internal/sheets"
	"github.com/nuscanoeing/canoebot/internal/telegram"
	"github.com/nuscanoeing/canoebot/internal/week"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagEnvFile  string
	flagLogLevel string
	flagTimezone string
	flagFormat   string

	flagPort       string
	flagWebhookURL string

	flagDate    string
	flagSort    string
	flagOut     string
	flagPublish bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canoebot",
		Short: "Telegram bot for the canoeing club",
		Long: `canoebot answers club members on Telegram with a quote of the day,
today's boat allocation and last month's training attendance, all read from
the club's Google spreadsheet.

The subcommands other than serve and poll run a single lookup and print it,
which is handy for checking the spreadsheet layout without Telegram.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file")
	pf.StringVar(&flagEnvFile, "env-file", config.DefaultEnvFile, "dotenv file loaded if present")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (env: LOG_LEVEL)")
	pf.StringVar(&flagTimezone, "timezone", "", "IANA timezone used for \"today\" (env: TIMEZONE)")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")

	cmd.AddCommand(newServeCmd(), newPollCmd(), newWeekCmd(), newQuoteCmd(), newBoatsCmd(), newAttendanceCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot behind a Telegram webhook",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagPort, "port", "", "Listen port (env: PORT)")
	cmd.Flags().StringVar(&flagWebhookURL, "webhook-url", "", "Public base URL (env: WEBHOOK_URL)")
	return cmd
}

func newPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run the bot with long polling, for local development",
		RunE:  runPoll,
	}
}

func newWeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the worksheet names used for a date",
		RunE:  runWeek,
	}
	addDateFlag(cmd)
	return cmd
}

func newQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Fetch a random quote",
		RunE:  runQuote,
	}
}

func newBoatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boats",
		Short: "Print the boat allocation for a day",
		RunE:  runBoats,
	}
	addDateFlag(cmd)
	cmd.Flags().StringVar(&flagSort, "sort", string(SortBySheet), "Sort order: sheet, name or boat")
	return cmd
}

func newAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Build the attendance report for the month before a date",
		RunE:  runAttendance,
	}
	addDateFlag(cmd)
	cmd.Flags().StringVar(&flagOut, "out", "", "Write the report as an .xlsx workbook to this file")
	cmd.Flags().BoolVar(&flagPublish, "publish", false, "Create the report spreadsheet in the Drive folder")
	return cmd
}

func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDate, "date", "", "Day as D/M/YYYY or YYYY-MM-DD (default today)")
}

// loadConfig layers the command-line flags over config.Load and installs the
// configured logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig, flagEnvFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("timezone") {
		cfg.Timezone = flagTimezone
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Lookup("webhook-url") != nil && flags.Changed("webhook-url") {
		cfg.WebhookURL = flagWebhookURL
	}

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr))
	return cfg, nil
}

func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// day resolves --date in the configured timezone, today when unset.
func day(cfg *config.Config) (time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	if flagDate == "" {
		return week.SystemClock(loc)(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", flagDate, loc); err == nil {
		return t, nil
	}
	t, err := week.ParseDay(flagDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func newSheetsClient(ctx context.Context, cfg *config.Config) (*sheets.Client, error) {
	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}
	return sheets.NewClient(ctx, creds)
}

// buildBot wires the Telegram client, the spreadsheet services and the router.
func buildBot(ctx context.Context, cfg *config.Config) (*bot.Bot, error) {
	if err := cfg.Validate(config.NeedTelegram); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	if err := tgbotapi.SetLogger(logger.Default()); err != nil {
		return nil, fmt.Errorf("setting bot logger: %w", err)
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	sender, err := telegram.NewSender(api)
	if err != nil {
		return nil, err
	}

	svc := bot.Services{
		Clock:  week.SystemClock(loc),
		Quotes: quote.New(),
	}
	if err := cfg.Validate(config.NeedSheets); err != nil {
		logger.Warn("Spreadsheet commands disabled", logger.Fields{"reason": err.Error()})
	} else {
		client, err := newSheetsClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		svc.Boats = boat.NewService(client, cfg.SheetID)
		svc.Attendance = attendance.NewService(client, cfg.SheetID, cfg.FolderID)
	}
	if cfg.ImagesEnabled() {
		svc.Images = render.NewImageClient(cfg.HCTIUserID, cfg.HCTIAPIKey)
	}

	router := bot.NewRouter(sender)
	bot.Register(router, svc)

	b := bot.New(api, router)
	if err := b.RegisterCommands(); err != nil {
		logger.Warn("Could not register command menu", logger.Fields{"error": err.Error()})
	}

	logger.Info("Bot ready", logger.Fields{
		"bot":      api.Self.UserName,
		"sheets":   svc.Boats != nil,
		"images":   svc.Images != nil,
		"timezone": loc.String(),
	})
	return b, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := buildBot(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return b.Webhook(cmd.Context(), cfg.Addr(), cfg.WebhookURL)
}

func runPoll(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := buildBot(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return b.Poll(cmd.Context())
}

func runWeek(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}
	t, err := day(cfg)
	if err != nil {
		return err
	}
	return WriteOutput(cmd.OutOrStdout(), newWeekResult(t), format)
}

func runQuote(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}
	text := quote.New().Fetch(cmd.Context())
	return WriteOutput(cmd.OutOrStdout(), &QuoteResult{Text: text}, format)
}

func runBoats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}
	order, err := parseSortOrder(flagSort)
	if err != nil {
		return err
	}
	if err := cfg.Validate(config.NeedSheets); err != nil {
		return err
	}
	t, err := day(cfg)
	if err != nil {
		return err
	}

	client, err := newSheetsClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	rows, err := boat.NewService(client, cfg.SheetID).ForDay(cmd.Context(), t)
	if err != nil {
		return err
	}
	sortAllocations(rows, order)

	return WriteOutput(cmd.OutOrStdout(), &BoatResult{
		Day:         week.Day(t),
		Range:       boat.Range(t),
		Allocations: rows,
	}, format)
}

func runAttendance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}
	need := config.NeedSheets
	if flagPublish {
		need = config.NeedDrive
	}
	if err := cfg.Validate(need); err != nil {
		return err
	}
	t, err := day(cfg)
	if err != nil {
		return err
	}

	client, err := newSheetsClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	svc := attendance.NewService(client, cfg.SheetID, cfg.FolderID)
	report, err := svc.Build(cmd.Context(), t)
	if err != nil {
		return err
	}

	result := &AttendanceResult{Month: report.Month, Title: report.Title, Matrix: report.Matrix}
	if flagOut != "" {
		data, err := report.Workbook()
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagOut, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", flagOut, err)
		}
		result.Workbook = flagOut
	}
	if flagPublish {
		id, err := svc.Publish(cmd.Context(), report)
		if err != nil {
			return err
		}
		result.FileID = id
	}
	return WriteOutput(cmd.OutOrStdout(), result, format)
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	logger.Default().Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
