package repository

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Client struct {
	DB *gorm.DB
}

func NewRepository(connectionUrl string) (Repository, error) {
	db, err := gorm.Open(postgres.Open(connectionUrl), &gorm.Config{})

	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.AutoMigrate(&Execution{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate executions")
	}

	return Client{DB: db}, nil
}

type Repository interface {
	InsertExecution(execution *Execution) error
	GetExecution(id string) (*Execution, error)
}
