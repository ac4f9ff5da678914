package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleSchool  RoleType = "SCHOOL"
	RoleStudent RoleType = "STUDENT"
)

// JobStatus defines the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// HelpRequestStatus defines the state of a help desk ticket
type HelpRequestStatus string

const (
	HelpStatusOpen     HelpRequestStatus = "OPEN"
	HelpStatusResolved HelpRequestStatus = "RESOLVED"
)

// NotificationType categorizes notifications for client-side rendering
type NotificationType string

const (
	NotificationTypeApplication NotificationType = "APPLICATION"
	NotificationTypeInterview   NotificationType = "INTERVIEW"
	NotificationTypeAccount     NotificationType = "ACCOUNT"
	NotificationTypeGeneral     NotificationType = "GENERAL"
)
