package handler

import (
	"context"
	"strings"
	"time"

	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/exitv1"
	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const dateLayout = "2006-01-02"

func actorFrom(ctx context.Context) (exit.Actor, error) {
	actor, ok := interceptor.ActorFromContext(ctx)
	if !ok {
		return exit.Actor{}, status.Error(codes.Unauthenticated, "actor is required")
	}
	return actor, nil
}

func parseDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid date %q: want YYYY-MM-DD", raw)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toDomainAssets(items []*exitv1.AssetItem) []exit.AssetItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]exit.AssetItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, exit.AssetItem{
			Name:         item.Name,
			Category:     exit.AssetCategory(item.Category),
			SerialNumber: item.SerialNumber,
			Status:       exit.AssetStatus(item.Status),
			Remarks:      item.Remarks,
		})
	}
	return out
}

func toProtoExit(req *exit.ExitRequest) *exitv1.Exit {
	if req == nil {
		return nil
	}

	assets := make([]*exitv1.AssetItem, 0, len(req.Assets))
	for _, a := range req.Assets {
		assets = append(assets, &exitv1.AssetItem{
			Name:         a.Name,
			Category:     string(a.Category),
			SerialNumber: a.SerialNumber,
			Status:       string(a.Status),
			Remarks:      a.Remarks,
		})
	}

	clearances := make([]*exitv1.ClearanceStatus, 0, len(req.Clearances))
	for _, c := range req.Clearances {
		clearances = append(clearances, &exitv1.ClearanceStatus{
			Department: c.Department,
			Status:     string(c.Status),
			Remarks:    c.Remarks,
			UpdatedBy:  c.UpdatedBy,
			UpdatedAt:  formatTimestamp(c.UpdatedAt),
		})
	}

	return &exitv1.Exit{
		Id:                     req.ID,
		EmployeeId:             req.EmployeeID,
		EmployeeName:           req.EmployeeName,
		Department:             req.Department,
		Position:               req.Position,
		ProposedLastWorkingDay: formatDate(req.ProposedLastWorkingDay),
		ReasonForLeaving:       string(req.ReasonForLeaving),
		ReasonDetails:          req.ReasonDetails,
		Feedback:               req.Feedback,
		Suggestions:            req.Suggestions,
		DeclarationAccepted:    req.DeclarationAccepted,
		Assets:                 assets,
		Clearances:             clearances,
		Status:                 string(req.Status),
		ApprovedByManager:      req.ApprovedByManager,
		ManagerApprovedBy:      req.ManagerApprovedBy,
		ManagerApprovedAt:      formatTimestamp(req.ManagerApprovedAt),
		RejectionReason:        req.RejectionReason,
		RejectedBy:             req.RejectedBy,
		RejectedAt:             formatTimestamp(req.RejectedAt),
		CompletedBy:            req.CompletedBy,
		SubmittedAt:            formatTimestamp(req.SubmittedAt),
		CompletedAt:            formatTimestamp(req.CompletedAt),
		Version:                req.Version,
		CreatedAt:              formatTimestamp(&req.CreatedAt),
		UpdatedAt:              formatTimestamp(&req.UpdatedAt),
	}
}
