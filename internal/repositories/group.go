package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-registrations/internal/models"
)

// GroupRepository handles user groups and their memberships
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateGroup creates a group. If a concurrent request created the same name
// first, that group is returned.
func (r *GroupRepository) CreateGroup(name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if err := models.ValidateGroupName(name); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO groups (name, created_at)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, created_at`

	group := &models.Group{}
	err := r.db.QueryRow(query, name, time.Now()).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r.GetGroupByName(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetGroupByName retrieves a group by its exact name
func (r *GroupRepository) GetGroupByName(name string) (*models.Group, error) {
	group := &models.Group{}
	err := r.db.QueryRow(`SELECT id, name, created_at FROM groups WHERE name = $1`, strings.TrimSpace(name)).
		Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group %q: %w", name, models.ErrGroupNotFound)
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// AddUserToGroup adds a membership. Adding an existing member is a no-op.
func (r *GroupRepository) AddUserToGroup(groupID, userID int) error {
	_, err := r.db.Exec(`
		INSERT INTO user_groups (group_id, user_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add user to group: %w", err)
	}
	return nil
}

// GetMemberIDs returns the ids of the group's members in join order
func (r *GroupRepository) GetMemberIDs(groupID int) ([]int, error) {
	rows, err := r.db.Query(`SELECT user_id FROM user_groups WHERE group_id = $1 ORDER BY added_at, user_id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group members: %w", err)
	}
	return ids, nil
}
