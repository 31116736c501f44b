package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseNotPublished  = errors.New("course not published")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrNotEnrolled         = errors.New("not enrolled in this course")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrLessonLocked        = errors.New("previous lesson not completed")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAlreadySubmitted    = errors.New("assignment already submitted")
	ErrTestNotFound        = errors.New("test not found")
	ErrTestAlreadyTaken    = errors.New("test already taken")
	ErrNotPublished        = errors.New("not published or not accessible")
	ErrInvalidFriendTarget = errors.New("invalid friend request")
	ErrAlreadyFriends      = errors.New("already friends")
	ErrRequestNotFound     = errors.New("friend request not found")
	ErrRequestHandled      = errors.New("friend request already handled")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrInvalidEventTime    = errors.New("event end must not precede start")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
)
