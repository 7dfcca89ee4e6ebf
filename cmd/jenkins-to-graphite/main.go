package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/signalfx/jenkins-to-graphite/pkg/core"
	"github.com/signalfx/jenkins-to-graphite/pkg/core/config"
)

var (
	// Version for the tool
	Version string

	// BuiltTime for the tool
	BuiltTime string
)

func init() {
	log.SetFormatter(&prefixed.TextFormatter{})
	log.SetLevel(log.InfoLevel)
	log.SetOutput(os.Stderr)
}

// labelList collects repeated -label flags, each of which may also be a
// comma separated list
type labelList []string

func (l *labelList) String() string {
	return strings.Join(*l, ",")
}

func (l *labelList) Set(val string) error {
	for _, label := range strings.Split(val, ",") {
		if label = strings.TrimSpace(label); label != "" {
			*l = append(*l, label)
		}
	}
	return nil
}

// flags is used to store parsed flag values
type flags struct {
	// version is a bool flag for printing the version string
	version bool
	// debug is a bool flag for printing debugging information
	debug bool
	conf  config.Config
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// getFlags parses args (without the program name) into the config.  Flags
// that carry connection details fall back to environment variables so that
// secrets don't have to appear on the command line.
func getFlags(name string, args []string, output io.Writer) (*flags, error) {
	f := &flags{}
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.SetOutput(output)

	port, _ := strconv.Atoi(os.Getenv("GRAPHITE_PORT"))
	var labels labelList

	set.BoolVar(&f.version, "version", false, "print version")
	set.BoolVar(&f.debug, "debug", false, "print debugging output")

	set.StringVar(&f.conf.GraphiteServer, "graphite-server", envOr("GRAPHITE_SERVER", ""), "Host name of the server running graphite")
	set.IntVar(&f.conf.GraphitePort, "graphite-port", port, "Port of the graphite plaintext listener (default 2003)")
	set.StringVar(&f.conf.GraphitePrefix, "graphite-prefix", "", "Prefix of every metric name (default \"jenkins\")")
	set.DurationVar(&f.conf.DialTimeout, "dial-timeout", 0, "Timeout for sending metrics to graphite (default 10s)")
	set.BoolVar(&f.conf.DryRun, "dry-run", false, "Print metrics to stdout instead of sending them to graphite")

	set.StringVar(&f.conf.JenkinsURL, "jenkins-url", envOr("JENKINS_URL", ""), "Base url of your jenkins server (ex http://jenkins.example.com)")
	set.StringVar(&f.conf.Username, "jenkins-user", envOr("JENKINS_USER", ""), "User to authenticate with for jenkins")
	set.StringVar(&f.conf.Password, "jenkins-password", envOr("JENKINS_PASSWORD", ""), "Password for authenticating with jenkins")
	set.DurationVar(&f.conf.HTTPTimeout, "http-timeout", 0, "Timeout of each jenkins request (default 10s)")
	set.BoolVar(&f.conf.SkipVerify, "skip-verify", false, "Don't verify the TLS cert of jenkins")
	set.StringVar(&f.conf.CACertPath, "ca-cert", "", "Path to the CA cert that signed the TLS cert of jenkins")
	set.StringVar(&f.conf.ClientCertPath, "client-cert", "", "Path to a TLS client cert for jenkins")
	set.StringVar(&f.conf.ClientKeyPath, "client-key", "", "Path to the key of the TLS client cert")

	set.Var(&labels, "label", "Label to report executor metrics for, may be repeated or comma separated")
	set.StringVar(&f.conf.JobsView, "jobs-view", "", "View to report job status metrics for")

	set.StringVar(&f.conf.Logging.Level, "log-level", "", "Log level, one of debug, info, warn or error (default \"info\")")
	set.StringVar(&f.conf.Logging.Format, "log-format", "", "Log format, text or json (default \"text\")")

	if err := set.Parse(args); err != nil {
		return nil, err
	}

	f.conf.Labels = labels
	if f.debug {
		f.conf.Logging.Level = "debug"
	}
	return f, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := getFlags(args[0], args[1:], stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if f.version {
		fmt.Fprintf(stdout, "jenkins-to-graphite-version: %s, built-time: %s\n", Version, BuiltTime)
		return 0
	}

	conf := &f.conf
	if err := conf.Initialize(); err != nil {
		log.WithError(err).Error("Invalid configuration, need to specify graphite server and jenkins url")
		return 1
	}
	if err := conf.Logging.Apply(); err != nil {
		log.WithError(err).Error("Could not configure logging")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !core.NewAgent(conf, stdout).RunPass(ctx) {
		log.Warn("Metrics for this pass were dropped")
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
