package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/eringen/outreach"
	"github.com/eringen/outreach/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	case "hash-password":
		if err := runHashPassword(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "init":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: outreach init <dir>")
			os.Exit(1)
		}
		if err := runInit(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("outreach %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`outreach - website and content manager for a non-profit

Usage:
  outreach <command> [arguments]

Commands:
  serve           Run the web server (default)
  hash-password   Read a password from stdin and print its bcrypt hash
  init <dir>      Write an editable copy of the site content and .env.example
  version         Print the outreach version
  help            Show this help message`)
}

func runServe() error {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := outreach.ConfigFromEnv()
	if err != nil {
		return err
	}
	v, err := views.New()
	if err != nil {
		return err
	}

	var opts []outreach.Option
	if dir := os.Getenv("CONTENT_DIR"); dir != "" {
		opts = append(opts, outreach.WithContent(os.DirFS(dir)))
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		opts = append(opts, outreach.WithStaticDir(dir))
	}

	app := outreach.New(cfg, v, opts...)
	defer app.Close()

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", app.Config.Addr)
		errc <- app.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(ctx)
}

func runHashPassword() error {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return err
	}
	pw := strings.TrimRight(line, "\r\n")
	if len(pw) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hash, err := outreach.HashPassword(pw)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
