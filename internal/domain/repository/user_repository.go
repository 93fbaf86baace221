package repository

import (
	"context"
	"errors"
	"fmt"

	"telco_dash/internal/common"
	"telco_dash/internal/domain/model"
	"telco_dash/internal/platform/filestore"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id string) error
}

type fileUserRepository struct {
	store *filestore.Store
}

func NewFileUserRepository(store *filestore.Store) UserRepository {
	return &fileUserRepository{store: store}
}

func (r *fileUserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.store.Update(func(data *filestore.Data) error {
		for i := range data.Users {
			if data.Users[i].Email == user.Email {
				return common.ErrDuplicateEmail
			}
		}
		data.Users = append(data.Users, *user)
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("fileUserRepository.Create: %w", err)
	}
	return nil
}

func (r *fileUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var found *model.User
	r.store.View(func(data *filestore.Data) {
		for i := range data.Users {
			if data.Users[i].Email == email {
				u := data.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, common.ErrNotFound
	}
	return found, nil
}

func (r *fileUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var found *model.User
	r.store.View(func(data *filestore.Data) {
		for i := range data.Users {
			if data.Users[i].ID == id {
				u := data.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, common.ErrNotFound
	}
	return found, nil
}

func (r *fileUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	r.store.View(func(data *filestore.Data) {
		users = append(users, data.Users...)
	})
	return users, nil
}

func (r *fileUserRepository) Delete(ctx context.Context, id string) error {
	err := r.store.Update(func(data *filestore.Data) error {
		for i := range data.Users {
			if data.Users[i].ID == id {
				data.Users = append(data.Users[:i], data.Users[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return fmt.Errorf("fileUserRepository.Delete: %w", err)
	}
	return nil
}
