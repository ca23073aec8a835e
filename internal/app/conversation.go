package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"birthday_reminder_bot/internal/domain/intent"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the conversation manager
var ErrAmbiguousIntent = fmt.Errorf("could not determine what the requester wants")
var ErrNoConversation = fmt.Errorf("no pending conversation for this requester")

// ClarifyPrompt is sent when free text matches no intent rule.
const ClarifyPrompt = "I didn't quite catch that. What would you like me to do?\n" +
	"1. Set your birthday\n" +
	"2. Look up your birthday\n" +
	"3. Look up someone else's birthday\n" +
	"4. List all birthdays\n" +
	"Reply with a number from 1 to 4."

type conversationState int

const (
	stateAwaitingIntent conversationState = iota
	stateAwaitingArgument
)

type conversation struct {
	state  conversationState
	intent intent.Intent
	timer  *time.Timer
}

// Outcome is the result of feeding a reply into a pending conversation.
// Either Done is set and the command can be dispatched, or Prompt carries the
// next question to send the requester.
type Outcome struct {
	Done     bool
	Intent   intent.Intent
	Argument string
	Prompt   string
}

// ConversationManager is a short-lived clarification state machine, keyed by
// requester id: AwaitingIntent -> AwaitingArgument -> done, with a timeout
// transition to abandoned at every waiting state. One conversation per
// requester; starting a new one replaces the old.
type ConversationManager struct {
	mu        sync.Mutex
	pending   map[int64]*conversation
	timeout   time.Duration
	onTimeout func(requesterID int64)
	logger    *logrus.Entry
}

func NewConversationManager(timeout time.Duration, onTimeout func(requesterID int64), logger *logrus.Entry) *ConversationManager {
	return &ConversationManager{
		pending:   make(map[int64]*conversation),
		timeout:   timeout,
		onTimeout: onTimeout,
		logger:    logger.WithField("service", "conversation"),
	}
}

// BeginClarification starts (or restarts) a conversation asking the requester
// to pick one of the four commands. Returns the prompt to send.
func (m *ConversationManager) BeginClarification(requesterID int64) string {
	m.begin(requesterID, &conversation{state: stateAwaitingIntent})
	return ClarifyPrompt
}

// BeginArgument starts (or restarts) a conversation asking for the missing
// argument of an already-known intent. Returns the prompt to send.
func (m *ConversationManager) BeginArgument(requesterID int64, in intent.Intent) string {
	m.begin(requesterID, &conversation{state: stateAwaitingArgument, intent: in})
	return argumentPrompt(in)
}

func (m *ConversationManager) begin(requesterID int64, c *conversation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.pending[requesterID]; ok {
		old.timer.Stop()
		m.logger.WithField("requester_id", requesterID).Debug("Replacing pending conversation")
	}
	c.timer = time.AfterFunc(m.timeout, func() { m.expire(requesterID) })
	m.pending[requesterID] = c
}

func (m *ConversationManager) expire(requesterID int64) {
	m.mu.Lock()
	_, ok := m.pending[requesterID]
	if ok {
		delete(m.pending, requesterID)
	}
	m.mu.Unlock()

	if ok {
		m.logger.WithField("requester_id", requesterID).Info("Conversation timed out. Abandoning.")
		if m.onTimeout != nil {
			m.onTimeout(requesterID)
		}
	}
}

// Resolve feeds the requester's private reply into their pending conversation.
// ErrNoConversation means the reply was not part of a clarification at all;
// ErrAmbiguousIntent means the conversation is abandoned and the requester
// must start over.
func (m *ConversationManager) Resolve(requesterID int64, reply string) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.pending[requesterID]
	if !ok {
		return Outcome{}, ErrNoConversation
	}

	switch c.state {
	case stateAwaitingIntent:
		chosen, ok := intentForChoice(strings.TrimSpace(reply))
		if !ok {
			c.timer.Stop()
			delete(m.pending, requesterID)
			return Outcome{}, ErrAmbiguousIntent
		}
		if needsArgument(chosen) {
			c.state = stateAwaitingArgument
			c.intent = chosen
			c.timer.Reset(m.timeout)
			return Outcome{Intent: chosen, Prompt: argumentPrompt(chosen)}, nil
		}
		c.timer.Stop()
		delete(m.pending, requesterID)
		return Outcome{Done: true, Intent: chosen}, nil

	default: // stateAwaitingArgument
		c.timer.Stop()
		delete(m.pending, requesterID)
		return Outcome{Done: true, Intent: c.intent, Argument: strings.TrimSpace(reply)}, nil
	}
}

func intentForChoice(choice string) (intent.Intent, bool) {
	switch choice {
	case "1":
		return intent.IntentSetBirthday, true
	case "2":
		return intent.IntentGetOwnBirthday, true
	case "3":
		return intent.IntentGetBirthday, true
	case "4":
		return intent.IntentListBirthdays, true
	default:
		return intent.IntentUnknown, false
	}
}

func needsArgument(in intent.Intent) bool {
	return in == intent.IntentSetBirthday || in == intent.IntentGetBirthday
}

func argumentPrompt(in intent.Intent) string {
	switch in {
	case intent.IntentSetBirthday:
		return "What's the date? Use MM-DD-YYYY or YYYY-MM-DD."
	case intent.IntentGetBirthday:
		return "Whose birthday? Mention them, e.g. @name."
	default:
		return ""
	}
}
