package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

// SOSState is the workflow position. Done, DegradedDone and Failed are
// terminal; Dismiss resets from any of them.
type SOSState int

const (
	SOSIdle SOSState = iota
	SOSConfirming
	SOSLocating
	SOSSubmitting
	SOSDone
	SOSDegradedDone
	SOSFailed
)

func (s SOSState) String() string {
	switch s {
	case SOSIdle:
		return "idle"
	case SOSConfirming:
		return "confirming"
	case SOSLocating:
		return "locating"
	case SOSSubmitting:
		return "submitting"
	case SOSDone:
		return "done"
	case SOSDegradedDone:
		return "degraded"
	default:
		return "failed"
	}
}

const geolocationTimeout = 10 * time.Second

// Position is a device fix.
type Position struct {
	Lat      float64
	Lng      float64
	Accuracy float64
}

// Locator abstracts the device geolocation source. Implementations must
// honor ctx cancellation, request high accuracy and never serve a cached
// fix.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Geolocation failure codes, one user message each.
const (
	LocPermissionDenied    = "permission_denied"
	LocPositionUnavailable = "position_unavailable"
	LocTimeout             = "timeout"
	LocUnknown             = "unknown"
)

// PositionError carries one of the geolocation failure codes.
type PositionError struct {
	Code string
}

func (e *PositionError) Error() string {
	return "geolocation failed: " + e.Code
}

var locationMessages = map[string]string{
	LocPermissionDenied:    "Location access was denied. Enable location permissions and try again.",
	LocPositionUnavailable: "Your position could not be determined. Move to open sky and try again.",
	LocTimeout:             "Locating you took too long. Try again.",
	LocUnknown:             "Something went wrong while locating you.",
}

// SOSResult is what the workflow hands the UI after a submission.
type SOSResult struct {
	AlertID     string
	Degraded    bool
	Suggestions models.EmergencySuggestions
	Number      string
}

var ErrBadTransition = errors.New("invalid SOS state transition")

// SOSController drives the SOS workflow:
// Idle -> Confirming -> Locating -> Submitting -> Done/DegradedDone/Failed.
// The modal prevent-close flag is owned here, not by the view.
type SOSController struct {
	api           *APIClient
	locator       Locator
	identity      *IdentityStore
	number        string
	locateTimeout time.Duration

	mu           sync.Mutex
	state        SOSState
	preventClose bool
	result       *SOSResult
	errMessage   string
}

func NewSOSController(api *APIClient, locator Locator, identity *IdentityStore, emergencyNumber string) *SOSController {
	return &SOSController{
		api:           api,
		locator:       locator,
		identity:      identity,
		number:        emergencyNumber,
		locateTimeout: geolocationTimeout,
		state:         SOSIdle,
	}
}

// Trigger opens the confirmation step. The modal locks against casual
// dismissal from here until a terminal state or an explicit cancel.
func (c *SOSController) Trigger() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != SOSIdle {
		return ErrBadTransition
	}
	c.state = SOSConfirming
	c.preventClose = true
	c.result = nil
	c.errMessage = ""
	return nil
}

// Cancel backs out of the confirmation step. Only valid before the
// workflow has committed to locating.
func (c *SOSController) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != SOSConfirming {
		return ErrBadTransition
	}
	c.state = SOSIdle
	c.preventClose = false
	return nil
}

// Confirm runs the committed workflow: locate, submit, interpret. It
// blocks until a terminal state; drive it from the UI's goroutine of
// choice.
func (c *SOSController) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.state != SOSConfirming {
		c.mu.Unlock()
		return ErrBadTransition
	}
	c.state = SOSLocating
	c.mu.Unlock()

	locCtx, cancel := context.WithTimeout(ctx, c.locateTimeout)
	pos, err := c.locator.CurrentPosition(locCtx)
	cancel()
	if err != nil {
		c.fail(locationMessageFor(err))
		return err
	}
	// Some location stacks report success with garbage coordinates.
	if !finite(pos.Lat) || !finite(pos.Lng) {
		err := &PositionError{Code: LocUnknown}
		c.fail(locationMessages[LocUnknown])
		return err
	}

	c.mu.Lock()
	c.state = SOSSubmitting
	c.mu.Unlock()

	result, err := c.api.SendAlert(ctx, AlertSubmission{
		Lat:       pos.Lat,
		Lng:       pos.Lng,
		Accuracy:  pos.Accuracy,
		UserName:  c.identity.DisplayName(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if isTimeout(err) {
			c.fail("The alert request timed out. Call " + c.number + " directly.")
		} else {
			c.fail("The alert could not be sent. Call " + c.number + " directly.")
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Degraded success: the alert went through, there is just no nearby
	// help content to show beyond the emergency number.
	if result.Suggestions.Empty() {
		fallback := models.EmergencySuggestions{
			Hospitals:     []models.ServicePoint{{Name: "Emergency Services", Phone: c.number}},
			EmergencyTips: []string{"Call " + c.number + " immediately if you are in danger"},
		}
		fallback.Normalize()
		c.result = &SOSResult{
			AlertID:     result.AlertID,
			Degraded:    true,
			Suggestions: fallback,
			Number:      c.number,
		}
		c.state = SOSDegradedDone
		c.preventClose = false
		return nil
	}

	suggestions := *result.Suggestions
	suggestions.Normalize()
	c.result = &SOSResult{
		AlertID:     result.AlertID,
		Suggestions: suggestions,
		Number:      c.number,
	}
	c.state = SOSDone
	c.preventClose = false
	return nil
}

// Dismiss resets the workflow from a terminal state.
func (c *SOSController) Dismiss() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case SOSDone, SOSDegradedDone, SOSFailed:
		c.state = SOSIdle
		c.result = nil
		c.errMessage = ""
		return nil
	}
	return ErrBadTransition
}

func (c *SOSController) fail(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = SOSFailed
	c.errMessage = message + " You can always call " + c.number + "."
	c.preventClose = false
}

func (c *SOSController) State() SOSState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PreventClose reports whether the modal must stay open.
func (c *SOSController) PreventClose() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preventClose
}

func (c *SOSController) Result() *SOSResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *SOSController) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func locationMessageFor(err error) string {
	var posErr *PositionError
	if errors.As(err, &posErr) {
		if msg, ok := locationMessages[posErr.Code]; ok {
			return msg
		}
		return locationMessages[LocUnknown]
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return locationMessages[LocTimeout]
	}
	return locationMessages[LocUnknown]
}

// CallURI builds the tel: handoff for a phone number.
func CallURI(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '+':
			return r
		default:
			return -1
		}
	}, phone)
	return "tel:" + cleaned
}

// NavigateURL is the web fallback when in-app directions are not
// available for a suggestion.
func NavigateURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f", lat, lng)
}
