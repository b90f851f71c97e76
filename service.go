package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"ewintr.nl/learnpath/config"
	"ewintr.nl/learnpath/fetcher"
	"ewintr.nl/learnpath/handler"
	"ewintr.nl/learnpath/intake"
	"ewintr.nl/learnpath/mail"
	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/playlist"
	"ewintr.nl/learnpath/process"
	"ewintr.nl/learnpath/render"
	"ewintr.nl/learnpath/storage"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const queueSize = 16

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	args := os.Args[1:]
	serve := len(args) > 0 && args[0] == "serve"
	if serve {
		args = args[1:]
	}

	fs := flag.NewFlagSet("learnpath", flag.ExitOnError)
	envFile := fs.String("env", ".env", "file with environment variables")
	topic := fs.String("topic", "Python", "topic to learn")
	email := fs.String("email", "", "address to send the PDF to")
	background := fs.String("background", "", "current background with the topic")
	commitment := fs.String("commitment", "", "hours per week and preferred learning style")
	noInput := fs.Bool("no-input", false, "do not ask questions, use the flags only")
	fs.Parse(args)

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Error("unable to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	planRepo, closeRepo, err := planRepository(cfg, logger)
	if err != nil {
		logger.Error("unable to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepo()

	if serve {
		procs := mustProcessors(ctx, cfg, logger)
		queue := make(chan *model.Plan, queueSize)
		pipeline := process.NewPipeline(queue, procs, planRepo, logger)
		go pipeline.Run(ctx)
		logger.Info("pipeline started")

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.APIPort),
			Handler: handler.NewServer(planRepo, queue, logger),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("http server failed", slog.String("error", err.Error()))
				stop()
			}
		}()
		logger.Info("http server started", slog.Int("port", cfg.APIPort))

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		logger.Info("service stopped")
		return
	}

	answers := intake.Answers{
		Topic:      *topic,
		Email:      *email,
		Background: *background,
		Commitment: *commitment,
	}
	if !*noInput {
		if answers, err = intake.Run(os.Stdin, os.Stdout); err != nil {
			logger.Error("no answers", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	profile, err := intake.ParseProfile(answers)
	if err != nil {
		logger.Error("invalid answers", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !*noInput && profile.Email != "" && len(cfg.SMTP.Missing()) > 0 {
		cfg.SMTP = askSMTP(cfg.SMTP, *envFile, logger)
	}

	plan := model.NewPlan(profile)
	pipeline := process.NewPipeline(nil, mustProcessors(ctx, cfg, logger), planRepo, logger)
	if err := pipeline.Process(ctx, plan); err != nil {
		logger.Error("unable to create learning path", slog.String("plan", plan.ID.String()), slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(intake.Summary(plan, 80))
	fmt.Printf("PDF: %s\n", plan.DocumentPath)
	if plan.Status == model.PlanStatusDelivered {
		fmt.Printf("Sent to %s\n", plan.Profile.Email)
	}
}

// askSMTP lets the user fill in the missing mail settings. The old settings
// are kept when the user declines.
func askSMTP(current config.SMTP, envFile string, logger *slog.Logger) config.SMTP {
	smtp, save, err := intake.RunSMTP(os.Stdin, os.Stdout, current)
	if err != nil {
		if !errors.Is(err, intake.ErrSMTPDeclined) {
			logger.Warn("smtp settings not configured", slog.String("error", err.Error()))
		}
		return current
	}
	if save {
		if err := config.SaveSMTP(envFile, smtp); err != nil {
			logger.Warn("could not save smtp settings", slog.String("file", envFile), slog.String("error", err.Error()))
		} else {
			logger.Info("smtp settings saved", slog.String("file", envFile))
		}
	}

	return smtp
}

func mustProcessors(ctx context.Context, cfg config.Config, logger *slog.Logger) *process.Processors {
	procs, err := processors(ctx, cfg, logger)
	if err != nil {
		logger.Error("unable to set up processors", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return procs
}

func planRepository(cfg config.Config, logger *slog.Logger) (storage.PlanRepository, func() error, error) {
	if !cfg.Postgres.Enabled() {
		logger.Info("no database configured, plans are kept in memory")
		return storage.NewMemory(), func() error { return nil }, nil
	}
	postgres, err := storage.NewPostgres(storage.PostgresInfo{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
	})
	if err != nil {
		return nil, nil, err
	}
	return postgres, postgres.Close, nil
}

func processors(ctx context.Context, cfg config.Config, logger *slog.Logger) (*process.Processors, error) {
	if cfg.YoutubeAPIKey == "" {
		logger.Warn("YOUTUBE_API_KEY is not set, searches will fail")
	}
	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YoutubeAPIKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create youtube service: %w", err)
	}
	yt := fetcher.NewYoutube(ytClient, cfg.SearchRate)
	builder := playlist.NewCatalogBuilder(yt, playlist.DefaultWeights(), time.Duration(cfg.DefaultVideoMinutes)*time.Minute, logger)

	var generator fetcher.TextGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = fetcher.NewOpenAI(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel)
	}

	var sender process.MailSender
	missing := cfg.SMTP.Missing()
	if len(missing) == 0 {
		sender = mail.NewSMTP(mail.SMTPInfo{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			Secure:   cfg.SMTP.Secure,
			Timeout:  cfg.SMTP.Timeout,
			Debug:    cfg.SMTP.Debug,
		}, logger)
	}

	return process.NewProcessors(
		process.NewCataloger(builder, cfg.PlaylistSize, logger),
		process.NewScheduler(),
		process.NewNoteWriter(generator, logger),
		process.NewPublisher(render.NewPDF(cfg.OutputDir)),
		process.NewDeliverer(sender, missing, logger),
	), nil
}
