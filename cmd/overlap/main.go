package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/benmeehan/ble-overlap/internal/services"
	"github.com/benmeehan/ble-overlap/internal/utils"
	"github.com/benmeehan/ble-overlap/pkg/ble"
	"github.com/benmeehan/ble-overlap/pkg/file"
	"github.com/benmeehan/ble-overlap/pkg/identity"
	"github.com/benmeehan/ble-overlap/pkg/location"
	"github.com/benmeehan/ble-overlap/pkg/mqtt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file")
	flag.Parse()

	fileClient := file.NewFileService()

	// Load configuration from file
	config, err := utils.LoadConfig(*configPath, fileClient)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}

	logger := utils.NewLogger(config.Logger.Level, config.Logger.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, fileClient, logger); err != nil {
		stop()
		logger.Fatal().Err(err).Msg("Correlated scan failed")
	}
}

func run(ctx context.Context, config *utils.Config, fileClient file.FileOperations, logger zerolog.Logger) error {
	// Initialize the station identity
	stationIdentity := identity.NewStationIdentity(config.Station.IdentityFile, config.Station.Name, fileClient)
	if err := stationIdentity.Load(); err != nil {
		return fmt.Errorf("failed to load station identity: %w", err)
	}
	logger.Info().Str("station_id", stationIdentity.GetStationID()).Msg("Station identity loaded")

	scanner, err := ble.NewScanner(config.Scanner.Backend, config.Scanner.Duration)
	if err != nil {
		return fmt.Errorf("failed to create BLE scanner: %w", err)
	}
	defer scanner.Close()

	var locationProvider location.Provider
	if config.Station.GPS.Enabled {
		locationProvider = location.NewDeviceSensorProvider(config.Station.GPS.Port, config.Station.GPS.BaudRate, config.Station.GPS.ReadTimeout)
	}
	stationService := services.NewStationService(stationIdentity, locationProvider, utils.ComponentLogger(logger, "station")).
		WithLocationTimeout(config.Station.GPS.FixTimeout)

	correlator := services.NewCorrelationService(
		config.Correlation.InterScanDelay,
		config.Correlation.ReferencePower,
		config.Correlation.PathLossExponent,
		scanner,
		utils.ComponentLogger(logger, "correlator"),
	)

	report, err := correlator.RunCorrelatedScan(ctx)
	if err != nil {
		return err
	}
	report.Station = stationService.Describe(ctx)

	printReport(os.Stdout, report)

	if config.MQTT.Enabled {
		if err := publishReport(config, fileClient, report, logger); err != nil {
			return err
		}
	}

	return nil
}

func publishReport(config *utils.Config, fileClient file.FileOperations, report *models.OverlapReport, logger zerolog.Logger) error {
	// Generate a unique MQTT Client ID by appending a UUID
	clientID := config.MQTT.ClientID + "-" + uuid.New().String()
	logger.Info().Str("client_id", clientID).Str("broker", config.MQTT.Broker).Msg("Connecting to MQTT broker")

	mqttClient := mqtt.NewMqttService(fileClient)
	err := mqttClient.Initialize(mqtt.Options{
		Broker:         config.MQTT.Broker,
		ClientID:       clientID,
		Username:       config.MQTT.Username,
		Password:       config.MQTT.Password,
		CACertificate:  config.MQTT.CACertificate,
		ConnectTimeout: config.MQTT.PublishTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize MQTT connection: %w", err)
	}
	defer mqttClient.Disconnect(250)

	reportService := services.NewReportService(
		config.MQTT.Topic,
		config.MQTT.QOS,
		config.MQTT.Retained,
		config.MQTT.PublishTimeout,
		mqttClient,
		utils.ComponentLogger(logger, "report"),
	)
	return reportService.Publish(report)
}
