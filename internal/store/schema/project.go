package schema

import (
	"time"

	"github.com/porcinet/herdbook/internal/domain"
)

// Project represents the projects table - the farm unit that owns batches and animals
type Project struct {
	// ID is the project UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// Name is the display name of the project
	Name string `gorm:"column:name;not null"`
	// OwnerID is the user that owns the project and everything in it
	OwnerID string `gorm:"column:owner_id;not null;type:varchar(64)"`
	// ManagementMethod is the current bookkeeping mode (individual or batch)
	ManagementMethod domain.ManagementMethod `gorm:"column:management_method;not null;default:individual"`
	// CreatedAt is the timestamp when the project was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the project was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
