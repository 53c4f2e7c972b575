package chat

import (
	"net/http"
	"unicode/utf8"

	"taskchat/internal/httputil"
	chatlogic "taskchat/internal/logic/chat"
	"taskchat/internal/svc"
	"taskchat/internal/types"
)

const maxMessageLen = 10000

// Send a chat message (creates a conversation if needed)
func SendMessageHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := authorizedOwner(w, r)
		if !ok {
			return
		}

		var req types.ChatRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}
		if n := utf8.RuneCountInString(req.Message); n == 0 || n > maxMessageLen {
			httputil.ErrorWithCode(w, http.StatusBadRequest, "message must be between 1 and 10000 characters")
			return
		}

		l := chatlogic.NewSendMessageLogic(r.Context(), svcCtx)
		resp, err := l.SendMessage(ownerID, &req)
		if err != nil {
			writeError(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
