// Package dialog implements the per-user conversation state machine. It is
// transport neutral: a turn carries what the user did, a response carries a
// message template plus an optional option list or chart, and the bot adapter
// translates both.
package dialog

import "github.com/avbelov/countbook/internal/messages"

// Turn is one user action. Exactly one of Command, Option and Text is
// meaningful: Command for a slash command (without the slash, args split
// off), Option for a tapped inline button, Text for a plain message.
type Turn struct {
	UserID   int64
	Username string
	FullName string
	Language string
	Command  string
	Args     string
	Option   string
	Text     string
}

// Option is one tappable choice. Value round-trips through the transport and
// comes back as Turn.Option.
type Option struct {
	Value string
	Label string
}

// Response is one outgoing message. When Photo is set the rendered template
// becomes the photo caption. Columns controls keyboard layout (0 means one
// option per row). Text is filled by the engine once the user's language is
// known; transports send it as-is.
type Response struct {
	Template messages.ID
	Params   map[string]string
	Options  []Option
	Columns  int
	Photo    []byte
	Text     string
}

// Render resolves the response template for a language.
func (r Response) Render(lang string) string {
	return messages.Text(r.Template, lang, r.Params)
}

func reply(id messages.ID) Response {
	return Response{Template: id}
}

func replyParams(id messages.ID, params map[string]string) Response {
	return Response{Template: id, Params: params}
}
