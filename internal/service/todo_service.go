package service

import (
	"context"
	"errors"
	"strings"

	"mytodo-server/internal/domain"
	"mytodo-server/internal/repository"
)

// ErrTitleTooShort is returned when a todo title has fewer than 3 characters.
var ErrTitleTooShort = errors.New("title must be at least 3 characters long")

// TodoUpdate carries a partial update; nil fields are left unchanged.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TodoService coordinates todo operations scoped to their owning user.
type TodoService interface {
	Create(ctx context.Context, userID int64, title, description string) (*domain.Todo, error)
	List(ctx context.Context, userID int64) ([]domain.Todo, error)
	Update(ctx context.Context, userID, id int64, update TodoUpdate) (*domain.Todo, error)
	Delete(ctx context.Context, userID, id int64) error
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) Create(ctx context.Context, userID int64, title, description string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return nil, ErrTitleTooShort
	}

	todo := &domain.Todo{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
	}
	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) List(ctx context.Context, userID int64) ([]domain.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

func (s *todoService) Update(ctx context.Context, userID, id int64, update TodoUpdate) (*domain.Todo, error) {
	todo, err := s.todos.GetByUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if len(title) < 3 {
			return nil, ErrTitleTooShort
		}
		todo.Title = title
	}
	if update.Description != nil {
		todo.Description = strings.TrimSpace(*update.Description)
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, userID, id int64) error {
	return s.todos.Delete(ctx, id, userID)
}
