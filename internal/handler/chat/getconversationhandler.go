package chat

import (
	"net/http"

	"taskchat/internal/httputil"
	chatlogic "taskchat/internal/logic/chat"
	"taskchat/internal/svc"
)

// Get a conversation with its full message history
func GetConversationHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := authorizedOwner(w, r)
		if !ok {
			return
		}

		conversationID := httputil.PathVar(r, "conversationID")
		if conversationID == "" {
			httputil.ErrorWithCode(w, http.StatusBadRequest, "conversation id is required")
			return
		}

		l := chatlogic.NewGetConversationLogic(r.Context(), svcCtx)
		resp, err := l.GetConversation(ownerID, conversationID)
		if err != nil {
			writeError(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
