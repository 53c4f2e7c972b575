package handler

import (
	"net/http"

	"taskchat/internal/httputil"
	"taskchat/internal/svc"
	"taskchat/internal/types"
)

func HealthCheckHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.OkJSON(w, &types.HealthResponse{
			Status:  "healthy",
			Service: "taskchat",
		})
	}
}
