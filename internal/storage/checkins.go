package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/pitchlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const checkInCols = `id, user_id, check_in_number, check_in_date,
	 passing_accuracy_left, passing_accuracy_right,
	 finishing_near_left, finishing_far_left, finishing_near_right, finishing_far_right,
	 first_touch_left, first_touch_right, comfort_level_left, comfort_level_right,
	 skill_move_fake_shot_left, skill_move_fake_shot_right,
	 skill_move_croqueta_left, skill_move_croqueta_right,
	 skill_move_flip_flap_left, skill_move_flip_flap_right,
	 game_realism_success, endurance_jog_1km, endurance_jog_2km, endurance_jog_3km,
	 endurance_jog_4km, endurance_jog_5km, endurance_avg_hr, hiit_distance, max_sprint_time,
	 fatigued_finishing_near_left, fatigued_finishing_far_left,
	 fatigued_finishing_near_right, fatigued_finishing_far_right,
	 squat_weight, bench_weight, rdl_weight, pull_ups,
	 weight, protein_intake, sleep_hours, energy_level,
	 left_foot_confidence, overall_confidence, motivation_check,
	 created_at, updated_at`

// ListCheckIns returns a user's check-ins, newest first.
func (db *DB) ListCheckIns(ctx context.Context, userID int) ([]models.CheckIn, error) {
	rows, err := db.q.Query(ctx,
		`SELECT `+checkInCols+` FROM check_ins
		 WHERE user_id = $1 ORDER BY check_in_number DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying check-ins: %w", err)
	}
	defer rows.Close()

	var result []models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning check-in: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// LatestCheckIn returns the highest-numbered check-in, or nil when the user
// has none yet.
func (db *DB) LatestCheckIn(ctx context.Context, userID int) (*models.CheckIn, error) {
	row := db.q.QueryRow(ctx,
		`SELECT `+checkInCols+` FROM check_ins
		 WHERE user_id = $1 ORDER BY check_in_number DESC LIMIT 1`, userID)
	c, err := scanCheckIn(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest check-in: %w", err)
	}
	return &c, nil
}

// GetCheckIn retrieves one check-in. Returns ErrNotFound when missing.
func (db *DB) GetCheckIn(ctx context.Context, id uuid.UUID) (*models.CheckIn, error) {
	row := db.q.QueryRow(ctx,
		`SELECT `+checkInCols+` FROM check_ins WHERE id = $1`, id)
	c, err := scanCheckIn(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check-in %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying check-in: %w", err)
	}
	return &c, nil
}

// CreateCheckIn inserts a check-in, numbering it one past the user's
// current highest.
func (db *DB) CreateCheckIn(ctx context.Context, c models.CheckIn) (models.CheckIn, error) {
	row := db.q.QueryRow(ctx,
		`INSERT INTO check_ins (user_id, check_in_number, check_in_date,
		   passing_accuracy_left, passing_accuracy_right,
		   finishing_near_left, finishing_far_left, finishing_near_right, finishing_far_right,
		   first_touch_left, first_touch_right, comfort_level_left, comfort_level_right,
		   skill_move_fake_shot_left, skill_move_fake_shot_right,
		   skill_move_croqueta_left, skill_move_croqueta_right,
		   skill_move_flip_flap_left, skill_move_flip_flap_right,
		   game_realism_success, endurance_jog_1km, endurance_jog_2km, endurance_jog_3km,
		   endurance_jog_4km, endurance_jog_5km, endurance_avg_hr, hiit_distance, max_sprint_time,
		   fatigued_finishing_near_left, fatigued_finishing_far_left,
		   fatigued_finishing_near_right, fatigued_finishing_far_right,
		   squat_weight, bench_weight, rdl_weight, pull_ups,
		   weight, protein_intake, sleep_hours, energy_level,
		   left_foot_confidence, overall_confidence, motivation_check)
		 VALUES ($1,
		   (SELECT COALESCE(MAX(check_in_number), 0) + 1 FROM check_ins WHERE user_id = $1),
		   $2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,
		   $23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39,$40,$41,$42)
		 RETURNING `+checkInCols,
		c.UserID, c.CheckInDate,
		c.PassingAccuracyLeft, c.PassingAccuracyRight,
		c.FinishingNearLeft, c.FinishingFarLeft, c.FinishingNearRight, c.FinishingFarRight,
		c.FirstTouchLeft, c.FirstTouchRight, c.ComfortLevelLeft, c.ComfortLevelRight,
		c.SkillMoveFakeShotLeft, c.SkillMoveFakeShotRight,
		c.SkillMoveCroquetaLeft, c.SkillMoveCroquetaRight,
		c.SkillMoveFlipFlapLeft, c.SkillMoveFlipFlapRight,
		c.GameRealismSuccess, c.EnduranceJog1km, c.EnduranceJog2km, c.EnduranceJog3km,
		c.EnduranceJog4km, c.EnduranceJog5km, c.EnduranceAvgHR, c.HIITDistance, c.MaxSprintTime,
		c.FatiguedFinishingNearLeft, c.FatiguedFinishingFarLeft,
		c.FatiguedFinishingNearRight, c.FatiguedFinishingFarRight,
		c.SquatWeight, c.BenchWeight, c.RDLWeight, c.PullUps,
		c.Weight, c.ProteinIntake, c.SleepHours, c.EnergyLevel,
		c.LeftFootConfidence, c.OverallConfidence, c.MotivationCheck)
	out, err := scanCheckIn(row)
	if err != nil {
		return models.CheckIn{}, fmt.Errorf("inserting check-in: %w", err)
	}
	return out, nil
}

// UpdateCheckIn replaces the measurable fields of an existing check-in.
// The number and date keep their original values.
func (db *DB) UpdateCheckIn(ctx context.Context, c models.CheckIn) (*models.CheckIn, error) {
	row := db.q.QueryRow(ctx,
		`UPDATE check_ins SET
		   passing_accuracy_left = $2, passing_accuracy_right = $3,
		   finishing_near_left = $4, finishing_far_left = $5,
		   finishing_near_right = $6, finishing_far_right = $7,
		   first_touch_left = $8, first_touch_right = $9,
		   comfort_level_left = $10, comfort_level_right = $11,
		   skill_move_fake_shot_left = $12, skill_move_fake_shot_right = $13,
		   skill_move_croqueta_left = $14, skill_move_croqueta_right = $15,
		   skill_move_flip_flap_left = $16, skill_move_flip_flap_right = $17,
		   game_realism_success = $18, endurance_jog_1km = $19, endurance_jog_2km = $20,
		   endurance_jog_3km = $21, endurance_jog_4km = $22, endurance_jog_5km = $23,
		   endurance_avg_hr = $24, hiit_distance = $25, max_sprint_time = $26,
		   fatigued_finishing_near_left = $27, fatigued_finishing_far_left = $28,
		   fatigued_finishing_near_right = $29, fatigued_finishing_far_right = $30,
		   squat_weight = $31, bench_weight = $32, rdl_weight = $33, pull_ups = $34,
		   weight = $35, protein_intake = $36, sleep_hours = $37, energy_level = $38,
		   left_foot_confidence = $39, overall_confidence = $40, motivation_check = $41,
		   updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+checkInCols,
		c.ID,
		c.PassingAccuracyLeft, c.PassingAccuracyRight,
		c.FinishingNearLeft, c.FinishingFarLeft, c.FinishingNearRight, c.FinishingFarRight,
		c.FirstTouchLeft, c.FirstTouchRight, c.ComfortLevelLeft, c.ComfortLevelRight,
		c.SkillMoveFakeShotLeft, c.SkillMoveFakeShotRight,
		c.SkillMoveCroquetaLeft, c.SkillMoveCroquetaRight,
		c.SkillMoveFlipFlapLeft, c.SkillMoveFlipFlapRight,
		c.GameRealismSuccess, c.EnduranceJog1km, c.EnduranceJog2km, c.EnduranceJog3km,
		c.EnduranceJog4km, c.EnduranceJog5km, c.EnduranceAvgHR, c.HIITDistance, c.MaxSprintTime,
		c.FatiguedFinishingNearLeft, c.FatiguedFinishingFarLeft,
		c.FatiguedFinishingNearRight, c.FatiguedFinishingFarRight,
		c.SquatWeight, c.BenchWeight, c.RDLWeight, c.PullUps,
		c.Weight, c.ProteinIntake, c.SleepHours, c.EnergyLevel,
		c.LeftFootConfidence, c.OverallConfidence, c.MotivationCheck)
	out, err := scanCheckIn(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check-in %s: %w", c.ID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating check-in: %w", err)
	}
	return &out, nil
}

func scanCheckIn(row pgx.Row) (models.CheckIn, error) {
	var c models.CheckIn
	err := row.Scan(&c.ID, &c.UserID, &c.CheckInNumber, &c.CheckInDate,
		&c.PassingAccuracyLeft, &c.PassingAccuracyRight,
		&c.FinishingNearLeft, &c.FinishingFarLeft, &c.FinishingNearRight, &c.FinishingFarRight,
		&c.FirstTouchLeft, &c.FirstTouchRight, &c.ComfortLevelLeft, &c.ComfortLevelRight,
		&c.SkillMoveFakeShotLeft, &c.SkillMoveFakeShotRight,
		&c.SkillMoveCroquetaLeft, &c.SkillMoveCroquetaRight,
		&c.SkillMoveFlipFlapLeft, &c.SkillMoveFlipFlapRight,
		&c.GameRealismSuccess, &c.EnduranceJog1km, &c.EnduranceJog2km, &c.EnduranceJog3km,
		&c.EnduranceJog4km, &c.EnduranceJog5km, &c.EnduranceAvgHR, &c.HIITDistance, &c.MaxSprintTime,
		&c.FatiguedFinishingNearLeft, &c.FatiguedFinishingFarLeft,
		&c.FatiguedFinishingNearRight, &c.FatiguedFinishingFarRight,
		&c.SquatWeight, &c.BenchWeight, &c.RDLWeight, &c.PullUps,
		&c.Weight, &c.ProteinIntake, &c.SleepHours, &c.EnergyLevel,
		&c.LeftFootConfidence, &c.OverallConfidence, &c.MotivationCheck,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}
