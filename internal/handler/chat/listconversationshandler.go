package chat

import (
	"net/http"

	"taskchat/internal/httputil"
	chatlogic "taskchat/internal/logic/chat"
	"taskchat/internal/svc"
)

// List the user's conversations, newest first
func ListConversationsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := authorizedOwner(w, r)
		if !ok {
			return
		}

		limit := httputil.QueryInt(r, "limit", 0)
		offset := httputil.QueryInt(r, "offset", 0)

		l := chatlogic.NewListConversationsLogic(r.Context(), svcCtx)
		resp, err := l.ListConversations(ownerID, limit, offset)
		if err != nil {
			writeError(w, err)
		} else {
			httputil.OkJSON(w, resp)
		}
	}
}
