package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// audioClient is the subset of the OpenAI client used for speech.
type audioClient interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
	CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// OpenAI recognizes with Whisper and synthesizes with the TTS endpoint.
type OpenAI struct {
	client   audioClient
	recorder *Recorder
	player   *Player
	voice    openai.SpeechVoice
}

// NewOpenAI creates an OpenAI speech provider.
func NewOpenAI(apiKey, voice string, rec *Recorder, play *Player) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrUnavailable)
	}
	return newOpenAI(openai.NewClient(apiKey), voice, rec, play), nil
}

func newOpenAI(client audioClient, voice string, rec *Recorder, play *Player) *OpenAI {
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAI{client: client, recorder: rec, player: play, voice: openai.SpeechVoice(voice)}
}

// Recognizer returns the recognition half, bound to the recorder.
func (o *OpenAI) Recognizer() Recognizer { return openaiRecognizer{o} }

// Synthesizer returns the synthesis half, bound to the player.
func (o *OpenAI) Synthesizer() Synthesizer { return openaiSynthesizer{o} }

type openaiRecognizer struct{ o *OpenAI }

func (r openaiRecognizer) Available() error { return r.o.recorder.Available() }

func (r openaiRecognizer) Recognize(ctx context.Context, lang string) (string, error) {
	audio, err := r.o.recorder.Record(ctx)
	if err != nil {
		return "", err
	}
	resp, err := r.o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "utterance.wav",
		Reader:   bytes.NewReader(audio),
		Language: baseLanguage(lang),
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

type openaiSynthesizer struct{ o *OpenAI }

func (s openaiSynthesizer) Available() error { return s.o.player.Available() }

func (s openaiSynthesizer) Speak(ctx context.Context, text, _ string) error {
	if err := s.o.player.Available(); err != nil {
		return err
	}
	raw, err := s.o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          s.o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}
	defer raw.Close()
	return s.o.player.Play(ctx, raw)
}
