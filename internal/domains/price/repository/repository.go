package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/price/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Price interface {
	Insert(ctx context.Context, model model.Price) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Price, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Price, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InsertBulk(ctx context.Context, models []model.Price) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Price]
}

func New(db *postgres.Connection, otel otel.Otel) Price {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Price](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
