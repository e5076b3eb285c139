package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext records what a handler sends. Methods that are not
// overridden panic through the nil embedded Context.
type FakeContext struct {
	tele.Context

	User     *tele.User
	Cb       *tele.Callback
	Input    string
	Sent     []string
	Edited   []string
	Markups  []*tele.ReplyMarkup
	Answered []*tele.CallbackResponse
}

// NewFakeContext creates a context for a text message from userID.
func NewFakeContext(userID int64, text string) *FakeContext {
	return &FakeContext{User: &tele.User{ID: userID}, Input: text}
}

// NewFakeCallback creates a context for an inline button press.
func NewFakeCallback(userID int64, unique, data string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID},
		Cb:   &tele.Callback{ID: "cb", Unique: unique, Data: data},
	}
}

func (c *FakeContext) Sender() *tele.User       { return c.User }
func (c *FakeContext) Callback() *tele.Callback { return c.Cb }
func (c *FakeContext) Text() string             { return c.Input }

func (c *FakeContext) Data() string {
	if c.Cb != nil {
		return c.Cb.Data
	}
	return ""
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, fmt.Sprint(what))
	c.keepMarkup(opts)
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	c.Edited = append(c.Edited, fmt.Sprint(what))
	c.keepMarkup(opts)
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		resp = []*tele.CallbackResponse{{}}
	}
	c.Answered = append(c.Answered, resp...)
	return nil
}

// Last returns the last text sent or edited.
func (c *FakeContext) Last() string {
	if n := len(c.Edited); n > 0 && c.Cb != nil {
		return c.Edited[n-1]
	}
	if n := len(c.Sent); n > 0 {
		return c.Sent[n-1]
	}
	return ""
}

// LastMarkup returns the last reply markup passed to Send or Edit.
func (c *FakeContext) LastMarkup() *tele.ReplyMarkup {
	if n := len(c.Markups); n > 0 {
		return c.Markups[n-1]
	}
	return nil
}

func (c *FakeContext) keepMarkup(opts []interface{}) {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			c.Markups = append(c.Markups, m)
		}
	}
}
