// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"retail-etl/pkg/config"
)

// ConnectorFactory creates database connectors
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSourceConnector connects to the read-only RDS source database
func (f *ConnectorFactory) CreateSourceConnector(ctx context.Context) (*PostgresConnector, error) {
	f.logger.Info("Creating source database connector")

	connector, err := NewPostgresConnector(ctx, f.cfg.SourceDB, "source")
	if err != nil {
		return nil, fmt.Errorf("failed to create source connector: %w", err)
	}

	return connector, nil
}

// CreateTargetConnector connects to the destination database
func (f *ConnectorFactory) CreateTargetConnector(ctx context.Context) (*PostgresConnector, error) {
	f.logger.Info("Creating target database connector")

	connector, err := NewPostgresConnector(ctx, f.cfg.TargetDB, "target")
	if err != nil {
		return nil, fmt.Errorf("failed to create target connector: %w", err)
	}

	return connector, nil
}

// CreateAllConnectors creates both the source and target connectors
func (f *ConnectorFactory) CreateAllConnectors(ctx context.Context) (*PostgresConnector, *PostgresConnector, error) {
	source, err := f.CreateSourceConnector(ctx)
	if err != nil {
		return nil, nil, err
	}

	target, err := f.CreateTargetConnector(ctx)
	if err != nil {
		source.Close() // Clean up the source connection if the target fails
		return nil, nil, err
	}

	return source, target, nil
}
