package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/benmeehan/ble-overlap/pkg/mqtt"
	"github.com/rs/zerolog"
)

// ErrPublishTimeout is returned when the broker does not acknowledge a report in time.
var ErrPublishTimeout = errors.New("timed out publishing overlap report")

// ReportService publishes overlap reports to an MQTT topic as JSON.
type ReportService struct {
	pubTopic       string
	qos            int
	retained       bool
	publishTimeout time.Duration

	mqttClient mqtt.MQTTClient
	logger     zerolog.Logger
}

// NewReportService creates a ReportService.
func NewReportService(pubTopic string, qos int, retained bool, publishTimeout time.Duration,
	mqttClient mqtt.MQTTClient, logger zerolog.Logger) *ReportService {
	return &ReportService{
		pubTopic:       pubTopic,
		qos:            qos,
		retained:       retained,
		publishTimeout: publishTimeout,
		mqttClient:     mqttClient,
		logger:         logger,
	}
}

// Publish serialises the report and waits for the broker to accept it.
func (r *ReportService) Publish(report *models.OverlapReport) error {
	if report == nil {
		return errors.New("report is nil")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to serialize overlap report")
		return fmt.Errorf("failed to serialize overlap report: %w", err)
	}

	token := r.mqttClient.Publish(r.pubTopic, byte(r.qos), r.retained, payload)
	if !token.WaitTimeout(r.publishTimeout) {
		r.logger.Error().Str("topic", r.pubTopic).Dur("timeout", r.publishTimeout).Msg("Publishing overlap report timed out")
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		r.logger.Error().Err(err).Str("topic", r.pubTopic).Msg("Failed to publish overlap report")
		return fmt.Errorf("failed to publish overlap report: %w", err)
	}

	r.logger.Info().
		Str("report_id", report.ID).
		Str("topic", r.pubTopic).
		Int("overlaps", len(report.Overlaps)).
		Int("payload_size", len(payload)).
		Msg("Overlap report published")
	return nil
}
