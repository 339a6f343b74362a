package gameplay

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"

	"github.com/ryanshappa/GamePlay-sub000/ingest"
	"github.com/ryanshappa/GamePlay-sub000/post"
	"github.com/ryanshappa/GamePlay-sub000/storage"
)

const app = "gameplay"

type Config struct {
	HTTPAddress string

	// S3
	Region   string
	Endpoint string

	// Ingestion
	DestBucket         string
	PublicURLBase      string
	PostAPIURL         string
	PublishConcurrency int
}

func Run(
	ctx context.Context,
	args []string,
	getenv func(string) string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer) error {

	config, err := readArgs(args, stderr)
	if err != nil {
		return err
	}

	log := slog.With("httpAddress", config.HTTPAddress, "destBucket", config.DestBucket)

	store, err := storage.NewS3(ctx, config.Region, config.Endpoint)
	if err != nil {
		return errors.Wrap(err, "failed to create S3 client")
	}

	pipeline := &ingest.Pipeline{
		Source:        store,
		Dest:          store,
		Posts:         post.NewHTTPClient(config.PostAPIURL),
		DestBucket:    config.DestBucket,
		PublicURLBase: config.PublicURLBase,
		Concurrency:   config.PublishConcurrency,
	}

	mux := http.NewServeMux()
	err = registerRoutes(mux, pipeline)
	if err != nil {
		return errors.Wrap(err, "failed to register routes")
	}

	server := &http.Server{
		Addr:    config.HTTPAddress,
		Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Debug("begin shutdown server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	log.Info("starting http server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func readArgs(args []string, stderr io.Writer) (Config, error) {
	var c Config

	envPrefix := strings.ToUpper(app)
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Options may also be set from the environment. Prefix with %s_, use all caps and replace any - with _\n", envPrefix)
	}

	fs.StringVar(&c.HTTPAddress, "http-addr", ":8700", "Listen address for HTTP service")
	fs.StringVar(&c.Region, "s3-region", "us-east-1", "AWS region for the source and destination buckets")
	fs.StringVar(&c.Endpoint, "s3-endpoint", "", "Override the S3 endpoint (for S3-compatible stores). Empty for AWS")
	fs.StringVar(&c.DestBucket, "dest-bucket", "", "Destination bucket for published games. Required")
	fs.StringVar(&c.PublicURLBase, "public-url-base", "", "Public root of the destination bucket, no trailing slash. Defaults to https://<dest-bucket>.s3.amazonaws.com")
	fs.StringVar(&c.PostAPIURL, "post-api-url", "", "Base URL of the post API. Required")
	fs.IntVar(&c.PublishConcurrency, "publish-concurrency", 8, "Max concurrent uploads per archive during publish fan-out")

	slogOpt := slog.HandlerOptions{}
	var logLevel slog.Level
	fs.TextVar(&logLevel, "log-level", slog.LevelInfo, "Log level {DEBUG, INFO, WARN, ERROR}. Log level may also be set to a relative level or an integer, e.g. 'DEBUG-3', '6'")
	var logJSON bool
	fs.BoolVar(&logJSON, "log-json", true, "Log output as JSON")
	fs.BoolVar(&slogOpt.AddSource, "log-source", false, "Log output with source code information")
	var help bool
	fs.BoolVar(&help, "help", false, "Command line help. If enabled, will print options and exit")

	err := ff.Parse(fs, args[1:], ff.WithEnvVarPrefix(envPrefix), ff.WithEnvVarSplit("\n"))
	if err != nil {
		return c, errors.Wrap(err, "failed to parse command line options")
	}

	if help {
		fs.Usage()
	}

	if c.DestBucket == "" {
		return c, errors.New("option 'dest-bucket' is required")
	}
	if c.PostAPIURL == "" {
		return c, errors.New("option 'post-api-url' is required")
	}
	if c.PublicURLBase == "" {
		c.PublicURLBase = fmt.Sprintf("https://%s.s3.amazonaws.com", c.DestBucket)
	}

	slogOpt.Level = logLevel
	if logJSON {
		slog.SetDefault(slog.New(slog.NewJSONHandler(stderr, &slogOpt)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slogOpt)))
	}

	return c, nil
}
