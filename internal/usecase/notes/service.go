package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meeting-notes-team/meeting-notes/internal/adapter/repository"
	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
	"github.com/meeting-notes-team/meeting-notes/internal/infrastructure/cache"
	"github.com/meeting-notes-team/meeting-notes/internal/infrastructure/storage"
	transcriptuc "github.com/meeting-notes-team/meeting-notes/internal/usecase/transcript"
	pkgai "github.com/meeting-notes-team/meeting-notes/pkg/ai"
	"github.com/meeting-notes-team/meeting-notes/pkg/config"
	"github.com/meeting-notes-team/meeting-notes/pkg/jobcontext"
)

const statusCacheTTL = 5 * time.Minute

// Service orchestrates the recording-to-notes pipeline
type Service interface {
	StartProcessing(ctx context.Context, meetingID uuid.UUID, recordingURL string, style entities.FormatStyle) (*entities.NotesJob, error)
	SubmitTranscription(ctx context.Context, jobID uuid.UUID, recordingURL string) error
	HandleTranscriptionWebhook(ctx context.Context, payload []byte, signature string) error
	GetStatus(ctx context.Context, meetingID uuid.UUID) (entities.JobStatus, error)
	GetNotes(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingNotes, error)
	GetTranscript(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error)
	StartWorkerPool(ctx context.Context, workerCount int) error
	StopWorkerPool() error
}

type notesService struct {
	jobRepo        *repository.JobRepository
	transcriptRepo *repository.TranscriptRepository
	notesRepo      *repository.NotesRepository
	asmClient      *aai.Client
	completion     *pkgai.CompletionClient
	statusStore    cache.StatusStore
	objectStore    *storage.MinIOClient
	cfg            *config.Config
	logger         *zap.Logger

	submitSemaphore chan struct{} // limit concurrent transcription submissions
	workerStopChan  chan struct{}
	workerWg        sync.WaitGroup
	workerRunning   bool
	workerMutex     sync.Mutex
}

// NewService constructs the notes pipeline service
func NewService(
	jobRepo *repository.JobRepository,
	transcriptRepo *repository.TranscriptRepository,
	notesRepo *repository.NotesRepository,
	completion *pkgai.CompletionClient,
	statusStore cache.StatusStore,
	objectStore *storage.MinIOClient,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &notesService{
		jobRepo:         jobRepo,
		transcriptRepo:  transcriptRepo,
		notesRepo:       notesRepo,
		asmClient:       aai.NewClient(cfg.Assembly.APIKey),
		completion:      completion,
		statusStore:     statusStore,
		objectStore:     objectStore,
		cfg:             cfg,
		logger:          logger,
		submitSemaphore: make(chan struct{}, 2),
		workerStopChan:  make(chan struct{}),
	}
}

// StartProcessing creates a notes job for a recording and submits it for
// transcription.
func (s *notesService) StartProcessing(ctx context.Context, meetingID uuid.UUID, recordingURL string, style entities.FormatStyle) (*entities.NotesJob, error) {
	if recordingURL == "" {
		return nil, fmt.Errorf("recording URL is required")
	}
	if style == "" {
		style = entities.FormatStyleRich
	}

	job := entities.NewNotesJob(meetingID, recordingURL)
	job.Metadata.Language = s.cfg.Assembly.LanguageCode
	job.Metadata.Style = string(style)
	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create notes job: %w", err)
	}
	s.cacheStatus(ctx, meetingID, job.Status)

	if err := s.SubmitTranscription(ctx, job.ID, recordingURL); err != nil {
		// The pending job worker will retry the submission later.
		if s.logger != nil {
			s.logger.Warn("⚠️ Initial submission failed, job left for retry",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
	}
	return job, nil
}

// SubmitTranscription submits a recording to AssemblyAI with retry logic.
// The external transcript id is persisted before returning so the webhook
// can always find its job.
func (s *notesService) SubmitTranscription(ctx context.Context, jobID uuid.UUID, recordingURL string) error {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to get notes job: %w", err)
	}
	if job == nil {
		return fmt.Errorf("notes job not found: %s", jobID)
	}

	s.submitSemaphore <- struct{}{}
	defer func() { <-s.submitSemaphore }()

	var transcriptID string
	submitFn := func() error {
		cleanURL := strings.TrimSpace(recordingURL)

		webhookURL := s.cfg.Assembly.WebhookBaseURL
		if webhookURL != "" {
			webhookURL = strings.TrimRight(webhookURL, "/") + "/v1/webhooks/transcription"
		}

		params := &aai.TranscriptOptionalParams{
			SpeakerLabels: aai.Bool(true),
		}
		if webhookURL != "" {
			params.WebhookURL = &webhookURL
		}
		if s.cfg.Assembly.LanguageCode != "" {
			params.LanguageCode = aai.TranscriptLanguageCode(s.cfg.Assembly.LanguageCode)
		}

		if s.logger != nil {
			s.logger.Info("🎙️ Submitting recording for transcription",
				zap.String("job_id", job.ID.String()),
				zap.String("recording_url", cleanURL),
				zap.String("webhook_url", webhookURL),
			)
		}

		transcript, err := s.asmClient.Transcripts.TranscribeFromURL(ctx, cleanURL, params)
		if err != nil {
			return err
		}
		if transcript.ID != nil {
			transcriptID = *transcript.ID
		}

		// Persist external_job_id before returning: the webhook can arrive
		// within seconds and must find the job by that id.
		if err := s.jobRepo.MarkJobAsSubmitted(ctx, job.ID, transcriptID); err != nil {
			return fmt.Errorf("failed to update external_job_id: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		s.jobRepo.MarkJobAsFailed(ctx, job.ID, fmt.Sprintf("failed to submit transcription: %v", err))
		if s.logger != nil {
			s.logger.Error("❌ Failed to submit transcription after retries",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
		return err
	}

	s.cacheStatus(ctx, job.MeetingID, entities.JobStatusSubmitted)
	if s.logger != nil {
		s.logger.Info("✅ Transcription submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("transcript_id", transcriptID),
		)
	}
	return nil
}

// HandleTranscriptionWebhook processes AssemblyAI webhook payloads
func (s *notesService) HandleTranscriptionWebhook(ctx context.Context, payload []byte, signature string) error {
	if secret := s.cfg.Assembly.WebhookSecret; secret != "" {
		if !pkgai.VerifyHMAC(secret, payload, signature) {
			if s.logger != nil {
				s.logger.Warn("invalid transcription webhook signature")
			}
			return fmt.Errorf("invalid webhook signature")
		}
	}

	var body map[string]interface{}
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	transcriptID, ok := body["transcript_id"].(string)
	if !ok || transcriptID == "" {
		transcriptID, ok = body["id"].(string)
		if !ok || transcriptID == "" {
			return fmt.Errorf("transcript ID missing in webhook")
		}
	}
	status, _ := body["status"].(string)

	if s.logger != nil {
		s.logger.Info("📥 Received transcription webhook",
			zap.String("transcript_id", transcriptID),
			zap.String("status", status),
		)
	}

	job, err := s.jobRepo.GetJobByExternalID(ctx, transcriptID)
	if err != nil {
		return fmt.Errorf("failed to find notes job: %w", err)
	}
	if job == nil {
		return fmt.Errorf("notes job not found for transcript %s", transcriptID)
	}

	switch status {
	case "completed":
		if err := s.storeCompletedTranscript(ctx, job, transcriptID); err != nil {
			if s.logger != nil {
				s.logger.Error("❌ Failed to store completed transcript", zap.Error(err))
			}
			return err
		}
	case "error":
		errorMsg := fmt.Sprintf("transcription error: %v", body["error"])
		if err := s.jobRepo.MarkJobAsFailed(ctx, job.ID, errorMsg); err != nil && s.logger != nil {
			s.logger.Error("failed to mark job as failed", zap.Error(err))
		}
		s.cacheStatus(ctx, job.MeetingID, entities.JobStatusFailed)
	}

	return nil
}

// storeCompletedTranscript fetches the full transcript from AssemblyAI,
// reconstructs speaker turns and moves the job to transcript_ready.
func (s *notesService) storeCompletedTranscript(ctx context.Context, job *entities.NotesJob, transcriptID string) error {
	transcript, err := s.asmClient.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return fmt.Errorf("failed to fetch transcript: %w", err)
	}

	entity := entities.NewTranscript(job.MeetingID)
	entity.ModelUsed = "assemblyai"

	if transcript.Text != nil {
		entity.Text = *transcript.Text
	}
	if transcript.LanguageCode != "" {
		entity.Language = string(transcript.LanguageCode)
	}
	if transcript.Confidence != nil {
		entity.ConfidenceScore = *transcript.Confidence
	}
	if transcript.AudioDuration != nil {
		entity.DurationSeconds = int(*transcript.AudioDuration)
		job.Metadata.DurationSeconds = int(*transcript.AudioDuration)
	}

	if len(transcript.Words) > 0 {
		words := make([]entities.TranscriptWord, 0, len(transcript.Words))
		for _, w := range transcript.Words {
			word := entities.TranscriptWord{}
			if w.Text != nil {
				word.Word = *w.Text
			}
			if w.Start != nil {
				word.StartMS = *w.Start
			}
			if w.End != nil {
				word.EndMS = *w.End
			}
			if w.Confidence != nil {
				word.Confidence = *w.Confidence
			}
			if w.Speaker != nil {
				word.Speaker = *w.Speaker
			}
			words = append(words, word)
		}
		entity.Words = words

		tokens, segments := transcriptuc.TokensFromWords(words)
		turns := transcriptuc.Reconstruct(tokens, segments)
		entity.Turns = turns
		entity.SpeakerText = transcriptuc.RenderSpeakerText(turns)

		speakers := make(map[string]bool)
		for _, t := range turns {
			if t.Speaker != transcriptuc.UnknownSpeaker {
				speakers[t.Speaker] = true
			}
		}
		entity.SpeakerCount = len(speakers)
		entity.HasSpeakers = len(speakers) > 0
		job.Metadata.SpeakerCount = len(speakers)
	}

	if err := s.transcriptRepo.CreateTranscript(ctx, entity); err != nil {
		return fmt.Errorf("failed to store transcript: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Transcript stored",
			zap.String("transcript_id", entity.ID.String()),
			zap.String("meeting_id", job.MeetingID.String()),
			zap.Int("text_length", len(entity.Text)),
			zap.Int("speaker_count", entity.SpeakerCount),
		)
	}

	// Archive the speaker-labelled transcript alongside the notes.
	if s.objectStore != nil && entity.SpeakerText != "" {
		if key, err := s.objectStore.UploadTranscript(ctx, job.MeetingID, entity.SpeakerText); err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Failed to archive transcript", zap.Error(err))
			}
		} else if s.logger != nil {
			s.logger.Info("✅ Transcript archived", zap.String("object_key", key))
		}
	}

	if err := s.jobRepo.UpdateJobMetadata(ctx, job.ID, job.Metadata); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to update job metadata", zap.Error(err))
	}

	if err := s.jobRepo.UpdateJobStatus(ctx, job.ID, entities.JobStatusTranscriptReady); err != nil {
		return fmt.Errorf("failed to mark job transcript_ready: %w", err)
	}
	s.cacheStatus(ctx, job.MeetingID, entities.JobStatusTranscriptReady)

	return nil
}

// GetStatus returns the pipeline status for a meeting, served from cache
// when fresh.
func (s *notesService) GetStatus(ctx context.Context, meetingID uuid.UUID) (entities.JobStatus, error) {
	if s.statusStore != nil {
		if value, ok, err := s.statusStore.Get(ctx, statusCacheKey(meetingID)); err == nil && ok {
			return entities.JobStatus(value), nil
		}
	}

	job, err := s.jobRepo.GetLatestJobByMeetingID(ctx, meetingID)
	if err != nil {
		return "", err
	}
	if job == nil {
		return "", nil
	}
	s.cacheStatus(ctx, meetingID, job.Status)
	return job.Status, nil
}

// GetNotes returns the latest notes for a meeting
func (s *notesService) GetNotes(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingNotes, error) {
	return s.notesRepo.GetNotesByMeetingID(ctx, meetingID)
}

// GetTranscript returns the latest transcript for a meeting
func (s *notesService) GetTranscript(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	return s.transcriptRepo.GetTranscriptByMeetingID(ctx, meetingID)
}

func (s *notesService) cacheStatus(ctx context.Context, meetingID uuid.UUID, status entities.JobStatus) {
	if s.statusStore == nil {
		return
	}
	if err := s.statusStore.Set(ctx, statusCacheKey(meetingID), string(status), statusCacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache job status", zap.Error(err))
	}
}

func statusCacheKey(meetingID uuid.UUID) string {
	return "notes:status:" + meetingID.String()
}

// StartWorkerPool starts background workers that turn ready transcripts
// into notes, resubmit pending jobs and recover stuck ones.
func (s *notesService) StartWorkerPool(ctx context.Context, workerCount int) error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.workerRunning {
		return fmt.Errorf("worker pool already running")
	}
	s.workerRunning = true
	s.workerStopChan = make(chan struct{})

	if s.logger != nil {
		s.logger.Info("🚀 Starting notes worker pool",
			zap.Int("worker_count", workerCount),
		)
	}

	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.notesWorker(ctx, i)
	}

	s.workerWg.Add(1)
	go s.pendingJobWorker(ctx)

	s.workerWg.Add(1)
	go s.stuckJobWorker(ctx)

	return nil
}

// StopWorkerPool gracefully stops all worker goroutines
func (s *notesService) StopWorkerPool() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if !s.workerRunning {
		return fmt.Errorf("worker pool not running")
	}

	if s.logger != nil {
		s.logger.Info("🛑 Stopping notes worker pool...")
	}

	close(s.workerStopChan)
	s.workerWg.Wait()
	s.workerRunning = false

	if s.logger != nil {
		s.logger.Info("✅ Notes worker pool stopped")
	}
	return nil
}

// notesWorker polls for jobs with ready transcripts and generates notes
func (s *notesService) notesWorker(parentCtx context.Context, workerID int) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(s.cfg.Worker.PollInterval)
	defer ticker.Stop()

	if s.logger != nil {
		s.logger.Info("👷 Notes worker started", zap.Int("worker_id", workerID))
	}

	for {
		select {
		case <-s.workerStopChan:
			if s.logger != nil {
				s.logger.Info("👷 Notes worker stopping", zap.Int("worker_id", workerID))
			}
			return

		case <-ticker.C:
			jobs, err := s.jobRepo.ListJobsByStatus(parentCtx, entities.JobStatusTranscriptReady, 1)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Failed to poll jobs",
						zap.Int("worker_id", workerID),
						zap.Error(err),
					)
				}
				continue
			}
			if len(jobs) == 0 {
				continue
			}
			job := jobs[0]

			// Atomic claim: only one worker wins when several see the job.
			claimed, err := s.jobRepo.ClaimJob(parentCtx, job.ID, entities.JobStatusTranscriptReady, entities.JobStatusSummarizing)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Failed to claim job",
						zap.String("job_id", job.ID.String()),
						zap.Error(err),
					)
				}
				continue
			}
			if !claimed {
				continue
			}

			if s.logger != nil {
				s.logger.Info("👷 Worker claimed job",
					zap.Int("worker_id", workerID),
					zap.String("job_id", job.ID.String()),
					zap.String("meeting_id", job.MeetingID.String()),
				)
			}
			s.cacheStatus(parentCtx, job.MeetingID, entities.JobStatusSummarizing)

			jobCtx, cancel := jobcontext.Begin(parentCtx, job.ID, workerID, s.cfg.Worker.JobTimeout)
			err = jobcontext.Execute(jobCtx, func(ctx context.Context) error {
				return s.generateNotes(ctx, &job)
			})
			cancel()

			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Notes generation failed after retries",
						zap.String("job_id", job.ID.String()),
						zap.Error(err),
					)
				}
				s.jobRepo.MarkJobAsFailed(parentCtx, job.ID, err.Error())
				s.cacheStatus(parentCtx, job.MeetingID, entities.JobStatusFailed)
			} else {
				s.jobRepo.MarkJobAsCompleted(parentCtx, job.ID)
				s.cacheStatus(parentCtx, job.MeetingID, entities.JobStatusCompleted)
				if s.logger != nil {
					s.logger.Info("✅ Notes generated",
						zap.String("job_id", job.ID.String()),
						zap.String("meeting_id", job.MeetingID.String()),
					)
				}
			}
		}
	}
}

// generateNotes builds the notes document for a claimed job: completion,
// parsing, rendering, persistence and archival. A failed completion falls
// back to extractive summarization so the job still produces a document.
func (s *notesService) generateNotes(ctx context.Context, job *entities.NotesJob) error {
	startTime := time.Now()

	transcript, err := s.transcriptRepo.GetTranscriptByMeetingID(ctx, job.MeetingID)
	if err != nil {
		return fmt.Errorf("failed to get transcript: %w", err)
	}
	if transcript == nil {
		return fmt.Errorf("transcript not found for meeting %s", job.MeetingID)
	}

	sourceText := transcript.Text
	if transcript.HasSpeakers && transcript.SpeakerText != "" {
		sourceText = transcript.SpeakerText
	}
	if strings.TrimSpace(sourceText) == "" {
		return fmt.Errorf("transcript text is empty for meeting %s", job.MeetingID)
	}

	hints := pkgai.ExtractParticipantHints(sourceText)

	style := entities.FormatStyle(job.Metadata.Style)
	if style == "" {
		style = entities.FormatStyleRich
	}

	var fields Fields
	usedFallback := false
	raw, err := s.completion.GenerateNotes(ctx, sourceText, hints)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Completion failed, using extractive fallback",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
		fields = SummarizeExtractive(transcript.Text)
		usedFallback = true
	} else {
		fields = ParseCompletion(raw, style)
	}

	if len(fields.Participants) == 0 && len(transcript.Turns) > 0 {
		fields.Participants = transcriptuc.ParticipantsFromTurns(transcript.Turns)
	}

	now := time.Now()
	markdown := FormatNotes(fields, RenderOptions{
		MeetingDate: job.CreatedAt,
		GeneratedAt: now,
		HasSpeakers: transcript.HasSpeakers,
		Style:       style,
	})

	notes := entities.NewMeetingNotes(job.MeetingID)
	notes.TranscriptID = &transcript.ID
	notes.Summary = fields.Summary
	notes.KeyPoints = fields.KeyPoints
	notes.ActionItems = fields.ActionItems
	notes.Decisions = fields.Decisions
	notes.Participants = fields.Participants
	notes.Markdown = markdown
	notes.Style = style
	notes.HasSpeakers = transcript.HasSpeakers
	notes.MeetingDate = job.CreatedAt
	notes.GeneratedAt = now
	notes.ModelUsed = s.completion.Model()
	if usedFallback {
		notes.ModelUsed = "extractive"
	}

	if err := s.notesRepo.SaveNotes(ctx, notes); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}

	if s.objectStore != nil {
		if key, err := s.objectStore.UploadNotes(ctx, job.MeetingID, markdown); err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Failed to archive notes document", zap.Error(err))
			}
		} else {
			if err := s.notesRepo.UpdateObjectKey(ctx, notes.ID, key); err != nil && s.logger != nil {
				s.logger.Warn("⚠️ Failed to record object key", zap.Error(err))
			}
		}
	}

	job.Metadata.UsedFallback = usedFallback
	job.Metadata.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	if err := s.jobRepo.UpdateJobMetadata(ctx, job.ID, job.Metadata); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to update job metadata", zap.Error(err))
	}

	return nil
}

// pendingJobWorker resubmits pending jobs to the transcription provider
func (s *notesService) pendingJobWorker(parentCtx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(s.cfg.Worker.PollInterval)
	defer ticker.Stop()

	if s.logger != nil {
		s.logger.Info("👷 Pending job worker started")
	}

	for {
		select {
		case <-s.workerStopChan:
			if s.logger != nil {
				s.logger.Info("👷 Pending job worker stopping")
			}
			return

		case <-ticker.C:
			jobs, err := s.jobRepo.ListJobsByStatus(parentCtx, entities.JobStatusPending, 5)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Failed to poll pending jobs", zap.Error(err))
				}
				continue
			}

			for _, job := range jobs {
				// Age gate: skip jobs fresher than one poll interval so the
				// synchronous submission in StartProcessing is not raced.
				if time.Since(job.CreatedAt) < s.cfg.Worker.PollInterval {
					continue
				}

				if err := s.SubmitTranscription(parentCtx, job.ID, job.RecordingURL); err != nil {
					if s.logger != nil {
						s.logger.Error("❌ Failed to resubmit job",
							zap.String("job_id", job.ID.String()),
							zap.Error(err),
						)
					}
				}
			}
		}
	}
}

// stuckJobWorker recovers jobs whose webhook never arrived and resets
// summarizing jobs abandoned by a dead worker.
func (s *notesService) stuckJobWorker(parentCtx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(2 * time.Minute)
	defer ticker.Stop()

	if s.logger != nil {
		s.logger.Info("👷 Stuck job worker started")
	}

	for {
		select {
		case <-s.workerStopChan:
			if s.logger != nil {
				s.logger.Info("👷 Stuck job worker stopping")
			}
			return

		case <-ticker.C:
			s.recoverSubmittedJobs(parentCtx)
			s.resetAbandonedJobs(parentCtx)
		}
	}
}

// recoverSubmittedJobs polls the provider for jobs stuck in submitted
// status, covering missed webhooks.
func (s *notesService) recoverSubmittedJobs(parentCtx context.Context) {
	cutoff := time.Now().Add(-10 * time.Minute)
	jobs, err := s.jobRepo.ListStuckJobs(parentCtx, entities.JobStatusSubmitted, cutoff)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to query stuck jobs", zap.Error(err))
		}
		return
	}

	for _, job := range jobs {
		if job.ExternalJobID == nil || *job.ExternalJobID == "" {
			s.jobRepo.MarkJobAsFailed(parentCtx, job.ID, "no external transcript ID")
			continue
		}
		transcriptID := *job.ExternalJobID

		if s.logger != nil {
			s.logger.Info("🔍 Polling provider for stuck job",
				zap.String("job_id", job.ID.String()),
				zap.String("transcript_id", transcriptID),
				zap.Duration("stuck_for", time.Since(job.UpdatedAt)),
			)
		}

		transcript, err := s.asmClient.Transcripts.Get(parentCtx, transcriptID)
		if err != nil {
			// Might be a temporary API error, leave the job for the next sweep.
			if s.logger != nil {
				s.logger.Error("❌ Failed to poll provider",
					zap.String("transcript_id", transcriptID),
					zap.Error(err),
				)
			}
			continue
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			if s.logger != nil {
				s.logger.Info("✅ Transcript completed (webhook missed), processing now",
					zap.String("job_id", job.ID.String()),
				)
			}
			if err := s.storeCompletedTranscript(parentCtx, &job, transcriptID); err != nil {
				s.jobRepo.MarkJobAsFailed(parentCtx, job.ID, fmt.Sprintf("failed to process transcript: %v", err))
			}

		case aai.TranscriptStatusError:
			errorMsg := "transcription failed"
			if transcript.Error != nil {
				errorMsg = fmt.Sprintf("transcription error: %s", *transcript.Error)
			}
			s.jobRepo.MarkJobAsFailed(parentCtx, job.ID, errorMsg)

		case aai.TranscriptStatusQueued, aai.TranscriptStatusProcessing:
			// Still running, give it more time.
			s.jobRepo.TouchJob(parentCtx, job.ID)
		}
	}
}

// resetAbandonedJobs returns long-running summarizing jobs to the queue
func (s *notesService) resetAbandonedJobs(parentCtx context.Context) {
	cutoff := time.Now().Add(-10 * time.Minute)
	jobs, err := s.jobRepo.ListStuckJobs(parentCtx, entities.JobStatusSummarizing, cutoff)
	if err != nil {
		return
	}

	for _, job := range jobs {
		if s.logger != nil {
			s.logger.Warn("🧹 Resetting abandoned job",
				zap.String("job_id", job.ID.String()),
				zap.Time("updated_at", job.UpdatedAt),
			)
		}
		s.jobRepo.UpdateJobStatus(parentCtx, job.ID, entities.JobStatusTranscriptReady)
	}
}
