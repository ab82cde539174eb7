package menu

import (
	"fmt"

	"github.com/blokas/pisound-config/internal/logging"
	"github.com/blokas/pisound-config/internal/logging/events"
)

// ErrorView logs err and returns a message view explaining it, with a back
// control leading to back.
func ErrorView(title string, err error, back Callback) MessageView {
	logging.Error(err)
	events.View.Error(err)
	return MessageView{
		Title: title,
		Body:  fmt.Sprintf("Something went wrong:\n\n%v", err),
		Back:  back,
	}
}
