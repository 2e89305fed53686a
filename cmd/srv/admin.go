package main

import (
	"encoding/json"
	"fmt"

	"github.com/questx-lab/fittrack/internal/domain"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/urfave/cli/v2"
)

func printJSON(cctx *cli.Context, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cctx.App.Writer, string(b))
	return err
}

func (s *srv) openDrawing(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	resp, err := s.drawingDomain.Open(s.ctx, &model.TransitDrawingRequest{DrawingID: cctx.String("id")})
	if err != nil {
		return err
	}

	return printJSON(cctx, resp)
}

func (s *srv) closeDrawing(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	resp, err := s.drawingDomain.Close(s.ctx, &model.TransitDrawingRequest{DrawingID: cctx.String("id")})
	if err != nil {
		return err
	}

	return printJSON(cctx, resp)
}

func (s *srv) executeDrawing(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	resp, err := s.drawingDomain.Execute(s.ctx, &model.ExecuteDrawingRequest{DrawingID: cctx.String("id")})
	if err != nil {
		return err
	}

	return printJSON(cctx, resp)
}

func (s *srv) verifyDrawing(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	resp, err := s.drawingDomain.Verify(s.ctx, &model.VerifyDrawingRequest{DrawingID: cctx.String("id")})
	if err != nil {
		return err
	}

	if err := printJSON(cctx, resp); err != nil {
		return err
	}

	if !resp.Valid {
		return cli.Exit("stored winners do not match the seed", 1)
	}

	return nil
}

func (s *srv) refreshLeaderboard(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	n, err := s.leaderboard.Refresh(s.ctx)
	fmt.Fprintf(cctx.App.Writer, "refreshed %d leaderboards\n", n)
	return err
}

func (s *srv) invalidateLeaderboard(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	n, err := s.leaderboard.InvalidateCache(s.ctx, cctx.String("period"), cctx.String("tier"))
	if err != nil {
		return err
	}

	fmt.Fprintf(cctx.App.Writer, "invalidated %d leaderboards\n", n)
	return nil
}

func (s *srv) adjustPoints(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	pointDomain := domain.NewPointDomain(s.userRepo, s.transactionRepo, s.dailyLogRepo)
	resp, err := pointDomain.AdjustPoints(s.ctx, &model.AdjustPointsRequest{
		UserID:  cctx.String("user"),
		Amount:  cctx.Int64("amount"),
		Reason:  cctx.String("reason"),
		AdminID: cctx.String("admin"),
	})
	if err != nil {
		return err
	}

	return printJSON(cctx, resp)
}

func (s *srv) listProfiles(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	resp, err := s.profileDomain.ListByTier(s.ctx, &model.ListProfilesByTierRequest{
		TierCode: cctx.String("tier"),
		Offset:   cctx.Int("offset"),
		Limit:    cctx.Int("limit"),
	})
	if err != nil {
		return err
	}

	return printJSON(cctx, resp)
}

func (s *srv) countProfiles(cctx *cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	resp, err := s.profileDomain.Count(s.ctx, &model.CountProfilesRequest{
		TierCode:      cctx.String("tier"),
		BiologicalSex: cctx.String("sex"),
		AgeBracket:    cctx.String("age"),
		FitnessLevel:  cctx.String("level"),
	})
	if err != nil {
		return err
	}

	return printJSON(cctx, resp)
}
