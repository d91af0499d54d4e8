package service

import "errors"

var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrUserProgressNotFound = errors.New("user progress not found")
	ErrNoHearts             = errors.New("hearts exhausted")
	ErrHeartsFull           = errors.New("hearts already full")
	ErrNotEnoughPoints      = errors.New("not enough points")
)
