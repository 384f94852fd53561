package postgres

import (
	"context"
	"dsmovie/user"
	"errors"

	"gorm.io/gorm"
)

// UserModel represents the database model for users
type UserModel struct {
	ID       int64       `gorm:"primaryKey"`
	Username string      `gorm:"not null;unique"`
	Password string      `gorm:"not null"`
	Roles    []RoleModel `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

type RoleModel struct {
	ID        int64  `gorm:"primaryKey"`
	Authority string `gorm:"not null;unique"`
}

func (RoleModel) TableName() string {
	return "roles"
}

type userDetailsRow struct {
	Username  string
	Password  string
	RoleID    int64
	Authority string
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (user.User, bool, error) {
	var model UserModel
	err := conn(ctx, r.db).
		Preload("Roles", func(db *gorm.DB) *gorm.DB { return db.Order("roles.id") }).
		Where("username = ?", username).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, false, nil
		}
		return user.User{}, false, err
	}
	return toDomainUser(model), true, nil
}

// SearchUserAndRolesByUsername returns one row per role of the user.
func (r *UserRepository) SearchUserAndRolesByUsername(ctx context.Context, username string) ([]user.DetailsRow, error) {
	const sql = `
SELECT u.username, u.password, r.id AS role_id, r.authority
FROM users u
INNER JOIN user_roles ur ON ur.user_id = u.id
INNER JOIN roles r ON r.id = ur.role_id
WHERE u.username = ?
ORDER BY r.id`

	var rows []userDetailsRow
	if err := conn(ctx, r.db).Raw(sql, username).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]user.DetailsRow, len(rows))
	for i, row := range rows {
		result[i] = user.DetailsRow{
			Username:  row.Username,
			Password:  row.Password,
			RoleID:    row.RoleID,
			Authority: row.Authority,
		}
	}
	return result, nil
}

func toDomainUser(model UserModel) user.User {
	roles := make([]user.Role, len(model.Roles))
	for i, role := range model.Roles {
		roles[i] = user.Role{ID: role.ID, Authority: role.Authority}
	}
	return user.User{
		ID:           model.ID,
		Username:     model.Username,
		PasswordHash: model.Password,
		Roles:        roles,
	}
}
