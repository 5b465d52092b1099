package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LogLevel string

const (
	LogLevelError LogLevel = "error"
	LogLevelWarn  LogLevel = "warn"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

type LogCategory string

const (
	LogCategoryUserAction LogCategory = "user_action"
	LogCategorySystem     LogCategory = "system"
	LogCategoryAPIRequest LogCategory = "api_request"
	LogCategoryDatabase   LogCategory = "database"
	LogCategoryPayment    LogCategory = "payment"
	LogCategorySecurity   LogCategory = "security"
	LogCategoryError      LogCategory = "error"
)

// LogRetention is how long operational log documents are kept before the
// store's TTL sweep removes them.
const LogRetention = 90 * 24 * time.Hour

type Log struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Level        LogLevel           `bson:"level" json:"level"`
	Category     LogCategory        `bson:"category" json:"category"`
	Message      string             `bson:"message" json:"message"`
	UserID       string             `bson:"userId,omitempty" json:"userId,omitempty"`
	SessionID    string             `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	IPAddress    string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent    string             `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	Endpoint     string             `bson:"endpoint,omitempty" json:"endpoint,omitempty"`
	Method       string             `bson:"method,omitempty" json:"method,omitempty"`
	StatusCode   int                `bson:"statusCode,omitempty" json:"statusCode,omitempty"`
	ResponseTime int64              `bson:"responseTime,omitempty" json:"responseTime,omitempty"`
	RequestData  map[string]any     `bson:"requestData,omitempty" json:"requestData,omitempty"`
	ResponseData map[string]any     `bson:"responseData,omitempty" json:"responseData,omitempty"`
	ErrorDetails map[string]any     `bson:"errorDetails,omitempty" json:"errorDetails,omitempty"`
	Metadata     map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	ExpiresAt    time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// LogQuery narrows a log listing. Zero values mean "no filter".
type LogQuery struct {
	Level    LogLevel
	Category LogCategory
	UserID   string
	From     time.Time
	To       time.Time
	Limit    int64
}

type LogRepository interface {
	Create(ctx context.Context, l *Log) error
	FindByID(ctx context.Context, id string) (*Log, error)
	Find(ctx context.Context, q LogQuery) ([]Log, error)
	Update(ctx context.Context, id string, changes map[string]any) (*Log, error)
	Delete(ctx context.Context, id string) (bool, error)
}
