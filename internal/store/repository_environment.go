package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/models"
)

type environmentRepository struct {
	*DB
	logger *logger.Logger
}

func NewEnvironmentRepository(db *DB, logger *logger.Logger) EnvironmentRepository {
	return &environmentRepository{
		DB:     db,
		logger: logger,
	}
}

func (e *environmentRepository) ListEnvironments(ctx context.Context) ([]models.Environment, error) {
	log := logger.FromContext(ctx)

	rows, err := e.DB.QueryContext(ctx, listEnvironments)
	if err != nil {
		log.Err(err).Str("func", "environmentRepository.ListEnvironments").Msg("failed to execute query for listing environments")
		return nil, wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	environments := make([]models.Environment, 0, 8)
	for rows.Next() {
		env, scanErr := scanEnvironment(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "environmentRepository.ListEnvironments").Msg("failed to scan environment row")
			return nil, scanErr
		}
		environments = append(environments, env)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(ErrScanningRows, err)
	}

	return environments, nil
}

func (e *environmentRepository) GetEnvironment(ctx context.Context, id string) (models.Environment, error) {
	env, err := scanEnvironment(e.DB.QueryRowContext(ctx, e.rebind(getEnvironment), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Environment{}, ErrEnvironmentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "environmentRepository.GetEnvironment").
			Str("environment_id", id).
			Msg("failed to get environment")
		return models.Environment{}, err
	}
	return env, nil
}

func (e *environmentRepository) SaveEnvironment(ctx context.Context, environment models.Environment) error {
	variables, err := toJSON(environment.Variables)
	if err != nil {
		return err
	}

	_, err = e.DB.ExecContext(ctx, e.rebind(upsertEnvironment),
		environment.ID, environment.Name, environment.ExternalPath, variables)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "environmentRepository.SaveEnvironment").
			Str("environment_id", environment.ID).
			Msg("failed to save environment")
		return wrapErr(ErrExecutingStatement, err)
	}
	return nil
}

func (e *environmentRepository) DeleteEnvironment(ctx context.Context, id string) error {
	res, err := e.DB.ExecContext(ctx, e.rebind(deleteEnvironment), id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "environmentRepository.DeleteEnvironment").
			Str("environment_id", id).
			Msg("failed to delete environment")
		return wrapErr(ErrExecutingStatement, err)
	}
	return expectAffected(res, ErrEnvironmentNotFound)
}

func scanEnvironment(row rowScanner) (models.Environment, error) {
	var (
		env       models.Environment
		variables string
	)
	if err := row.Scan(&env.ID, &env.Name, &env.ExternalPath, &variables); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Environment{}, err
		}
		return models.Environment{}, wrapErr(ErrScanningRow, err)
	}

	vars, err := fromJSON[models.KeyValue](variables)
	if err != nil {
		return models.Environment{}, err
	}
	env.Variables = vars
	return env, nil
}
