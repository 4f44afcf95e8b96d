package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	gateway "github.com/BeaconTeam/Beacon-Gateway/internal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	_ = godotenv.Load()

	configurationLocation := flag.String("configuration", os.Getenv("BEACON_CONFIGURATION"), "Path of configuration file")
	flag.Parse()

	if *configurationLocation == "" {
		*configurationLocation = "beacon.yaml"
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	var writer io.Writer = consoleWriter

	// File logging is configured before the configuration file is parsed, so
	// the log directory comes from the environment and the rotation settings
	// are fixed here.
	if directory := os.Getenv("BEACON_LOG_DIRECTORY"); directory != "" {
		if err := os.MkdirAll(directory, 0o744); err != nil {
			println("Failed to create log directory:", err.Error())
			os.Exit(1)
		}

		writer = zerolog.MultiLevelWriter(consoleWriter, &lumberjack.Logger{
			Filename:   filepath.Join(directory, "beacon.log"),
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     7,
			Compress:   true,
		})
	}

	beacon, err := gateway.NewBeacon(writer, *configurationLocation)
	if err != nil {
		println("Failed to create beacon:", err.Error())
		os.Exit(1)
	}

	err = beacon.Open()
	if err != nil {
		println("Failed to open beacon:", err.Error())
		os.Exit(1)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	err = beacon.Close()
	if err != nil {
		println("Exception whilst closing beacon:", err.Error())
	}
}
