// Package domain contains core types for the auth service.
package domain

import "github.com/bwmarrin/snowflake"

// User is a dashboard account. Password holds the encoded hash, never plain text.
type User struct {
	PK       snowflake.ID `gorm:"column:pk;primaryKey;autoIncrement:false" bson:"-" json:"-"`
	ID       string       `gorm:"column:id;type:varchar(36);not null;uniqueIndex" bson:"id" json:"id"`
	Name     string       `gorm:"column:name;not null" bson:"name" json:"name"`
	Email    string       `gorm:"column:email;type:varchar(255);not null;uniqueIndex" bson:"email" json:"email"`
	Password string       `gorm:"column:password;type:text;not null" bson:"password" json:"-"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
