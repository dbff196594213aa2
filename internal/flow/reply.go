package flow

// Reply is an outbound message intent: text plus optional suggested quick
// replies. Rendering (reply keyboards, menus) is the transport's job; empty
// Options means "show the main menu".
type Reply struct {
	Text    string
	Options []string
}

var (
	replyCancelled = Reply{Text: "Действие отменено. Главное меню:"}
	replyFailure   = Reply{Text: "Произошла ошибка, попробуйте ещё раз."}
)
