package chat

import (
	"net/http"

	"taskchat/internal/httputil"
	chatlogic "taskchat/internal/logic/chat"
	"taskchat/internal/svc"
)

// Create an empty conversation
func CreateConversationHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := authorizedOwner(w, r)
		if !ok {
			return
		}

		l := chatlogic.NewCreateConversationLogic(r.Context(), svcCtx)
		resp, err := l.CreateConversation(ownerID)
		if err != nil {
			writeError(w, err)
		} else {
			httputil.WriteJSON(w, http.StatusCreated, resp)
		}
	}
}
