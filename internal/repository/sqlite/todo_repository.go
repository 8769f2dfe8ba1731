package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mytodo-server/internal/domain"
	"mytodo-server/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const createTodosUserIndex = `CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTodosUserIndex); err != nil {
		return fmt.Errorf("create todos index: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (user_id, title, description, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		todo.UserID,
		todo.Title,
		todo.Description,
		boolToInt(todo.Completed),
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodo+`WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) GetByUser(ctx context.Context, id, userID int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, selectTodo+`WHERE id = ? AND user_id = ?`, id, userID)
	return scanTodo(row)
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	todo.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE todos
SET title = ?, description = ?, completed = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		todo.Title,
		todo.Description,
		boolToInt(todo.Completed),
		todo.UpdatedAt,
		todo.ID,
		todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrTodoNotFound
	}
	return nil
}

const selectTodo = `
SELECT id, user_id, title, description, completed, created_at, updated_at
FROM todos
`

func scanTodo(row interface {
	Scan(dest ...any) error
}) (*domain.Todo, error) {
	var (
		todo      domain.Todo
		completed int64
	)
	if err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&completed,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	todo.Completed = completed != 0
	return &todo, nil
}
