package usecase

import (
	"errors"
	"log"
	"time"

	activitydomain "assistant-backend/internal/activity/domain"
	activityrepo "assistant-backend/internal/activity/repository"
	"assistant-backend/internal/calendar/domain"
	"assistant-backend/internal/calendar/repository"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidRange  = errors.New("start time must be before end time")
	ErrUnauthorized  = errors.New("unauthorized")
)

// ScheduleInput carries the fields needed to put an event on the calendar
type ScheduleInput struct {
	Title           string
	Description     string
	Attendees       []domain.Attendee
	StartTime       time.Time
	EndTime         time.Time
	Location        string
	MeetingLink     string
	AIGenerated     bool
	OriginalCommand string
}

// CalendarUsecase schedules, cancels and completes calendar events
type CalendarUsecase interface {
	// Schedule creates an event, flags it when it overlaps any of the user's
	// existing non-cancelled events, and returns the conflicting events.
	// Conflicts never block creation.
	Schedule(userID string, in ScheduleInput) (*domain.CalendarEvent, []*domain.CalendarEvent, error)

	GetUpcoming(userID string, limit int) ([]*domain.CalendarEvent, error)
	Cancel(userID, eventID string) (*domain.CalendarEvent, error)
	Complete(userID, eventID string) (*domain.CalendarEvent, error)
}

type calendarUsecase struct {
	calendarRepo repository.CalendarRepository
	activityRepo activityrepo.ActivityRepository
}

// NewCalendarUsecase creates a new CalendarUsecase
func NewCalendarUsecase(calendarRepo repository.CalendarRepository, activityRepo activityrepo.ActivityRepository) CalendarUsecase {
	return &calendarUsecase{
		calendarRepo: calendarRepo,
		activityRepo: activityRepo,
	}
}

func (u *calendarUsecase) Schedule(userID string, in ScheduleInput) (*domain.CalendarEvent, []*domain.CalendarEvent, error) {
	if !in.StartTime.Before(in.EndTime) {
		return nil, nil, ErrInvalidRange
	}

	conflicts, err := u.calendarRepo.FindOverlapping(userID, in.StartTime, in.EndTime)
	if err != nil {
		return nil, nil, err
	}

	event := &domain.CalendarEvent{
		UserID:           userID,
		Title:            in.Title,
		Description:      in.Description,
		Attendees:        in.Attendees,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Location:         in.Location,
		MeetingLink:      in.MeetingLink,
		Status:           domain.EventStatusScheduled,
		AIGenerated:      in.AIGenerated,
		OriginalCommand:  in.OriginalCommand,
		ConflictDetected: len(conflicts) > 0,
	}

	if err := u.calendarRepo.Create(event); err != nil {
		return nil, nil, err
	}

	u.logActivity(userID, activitydomain.ActionMeetingScheduled, "Scheduled meeting: "+in.Title, in.OriginalCommand, event.ID, map[string]interface{}{
		"conflict_detected": len(conflicts) > 0,
	})

	return event, conflicts, nil
}

func (u *calendarUsecase) GetUpcoming(userID string, limit int) ([]*domain.CalendarEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return u.calendarRepo.FindUpcoming(userID, limit)
}

func (u *calendarUsecase) Cancel(userID, eventID string) (*domain.CalendarEvent, error) {
	event, err := u.ownedEvent(userID, eventID)
	if err != nil {
		return nil, err
	}

	event.Status = domain.EventStatusCancelled
	if err := u.calendarRepo.Update(event); err != nil {
		return nil, err
	}

	u.logActivity(userID, activitydomain.ActionMeetingCancelled, "Cancelled meeting: "+event.Title, "", event.ID, nil)
	return event, nil
}

func (u *calendarUsecase) Complete(userID, eventID string) (*domain.CalendarEvent, error) {
	event, err := u.ownedEvent(userID, eventID)
	if err != nil {
		return nil, err
	}

	event.Status = domain.EventStatusCompleted
	if err := u.calendarRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (u *calendarUsecase) ownedEvent(userID, eventID string) (*domain.CalendarEvent, error) {
	event, err := u.calendarRepo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.UserID != userID {
		return nil, ErrUnauthorized
	}
	return event, nil
}

func (u *calendarUsecase) logActivity(userID string, action activitydomain.Action, description, command, relatedID string, metadata map[string]interface{}) {
	entry := &activitydomain.ActivityLog{
		UserID:          userID,
		Action:          action,
		Description:     description,
		Command:         command,
		Status:          activitydomain.ActivityStatusSuccess,
		RelatedEntity:   "CalendarEvent",
		RelatedEntityID: relatedID,
		Metadata:        metadata,
	}
	if err := u.activityRepo.Create(entry); err != nil {
		log.Printf("[Calendar] Error writing activity log: %v", err)
	}
}
