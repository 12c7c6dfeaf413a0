package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const videoColumns = `id, name, video_path, frames_path, table_path, audio_path,
    frame_count, fps, status, error_message, created_at, updated_at`

// Register inserts a new video under a unique name.
func (s *Store) Register(ctx context.Context, name, videoPath string) (*Video, error) {
	if name == "" {
		return nil, errors.New("video name required")
	}
	if videoPath == "" {
		return nil, errors.New("video path required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO videos (name, video_path, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)`,
		name,
		videoPath,
		StatusRegistered,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a video by identifier. A missing row yields (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = ?`, id)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// GetByName fetches a video by its registered name. A missing row yields
// (nil, nil).
func (s *Store) GetByName(ctx context.Context, name string) (*Video, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos WHERE name = ?`, name)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video by name: %w", err)
	}
	return video, nil
}

// List returns all videos ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return videos, nil
}

// ListByStatus returns videos in the given state ordered by creation time.
func (s *Store) ListByStatus(ctx context.Context, status Status) ([]*Video, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE status = ? ORDER BY created_at, id`, status)
	if err != nil {
		return nil, fmt.Errorf("list videos by status: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return videos, nil
}

// Update persists changes to an existing video record.
func (s *Store) Update(ctx context.Context, video *Video) error {
	if video == nil {
		return errors.New("video is nil")
	}
	if !video.Status.Valid() {
		return fmt.Errorf("unknown status %q", video.Status)
	}
	video.UpdatedAt = time.Now().UTC()
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE videos
         SET name = ?, video_path = ?, frames_path = ?, table_path = ?,
             audio_path = ?, frame_count = ?, fps = ?, status = ?,
             error_message = ?, updated_at = ?
         WHERE id = ?`,
		video.Name,
		video.VideoPath,
		nullableString(video.FramesPath),
		nullableString(video.TablePath),
		nullableString(video.AudioPath),
		nullableInt(video.FrameCount),
		nullableFloat(video.FPS),
		video.Status,
		nullableString(video.ErrorMessage),
		video.UpdatedAt.Format(time.RFC3339Nano),
		video.ID,
	); err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	return nil
}

// SetStatus transitions a video to the given state, clearing any previous
// error message unless the new state is failed.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status, errorMessage string) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	if status != StatusFailed {
		errorMessage = ""
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE videos SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status,
		nullableString(errorMessage),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// Remove deletes a video record.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.execWithoutResultRetry(ctx, `DELETE FROM videos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove video: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*Video, error) {
	var (
		video        Video
		framesPath   sql.NullString
		tablePath    sql.NullString
		audioPath    sql.NullString
		frameCount   sql.NullInt64
		fps          sql.NullFloat64
		errorMessage sql.NullString
		createdAt    string
		updatedAt    string
	)
	if err := row.Scan(
		&video.ID,
		&video.Name,
		&video.VideoPath,
		&framesPath,
		&tablePath,
		&audioPath,
		&frameCount,
		&fps,
		&video.Status,
		&errorMessage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	video.FramesPath = framesPath.String
	video.TablePath = tablePath.String
	video.AudioPath = audioPath.String
	video.FrameCount = int(frameCount.Int64)
	video.FPS = fps.Float64
	video.ErrorMessage = errorMessage.String
	video.CreatedAt = parseTimestamp(createdAt)
	video.UpdatedAt = parseTimestamp(updatedAt)
	return &video, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}
