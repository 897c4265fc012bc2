// Package dummydb provides in-memory repositories for tests and local hacking.
package dummydb

import (
	"sync"

	"github.com/nkamau/elimu/core/comment"
	"github.com/nkamau/elimu/core/course"
	"github.com/nkamau/elimu/core/user"
)

type (
	DB struct {
		user    *userTable
		course  *courseTable
		comment *commentTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
	}

	commentTable struct {
		sync.RWMutex
		table map[string]*comment.Comment
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		course:  &courseTable{table: make(map[string]*course.Course)},
		comment: &commentTable{table: make(map[string]*comment.Comment)},
	}
	return db, nil
}
