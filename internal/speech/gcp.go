package speech

import (
	"context"
	"fmt"
	"os"
	"strings"

	gcpspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

const sampleRate = 16000

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// GCP recognizes speech with Google Cloud Speech-to-Text. It has no
// synthesis counterpart.
type GCP struct {
	recognize recognizeFunc
	recorder  *Recorder
	close     func() error
}

// NewGCP dials the Speech-to-Text API with credentials from
// GOOGLE_APPLICATION_CREDENTIALS(_JSON) or the ambient default.
func NewGCP(ctx context.Context, rec *Recorder) (*GCP, error) {
	client, err := gcpspeech.NewClient(ctx, clientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("%w: speech client: %v", ErrUnavailable, err)
	}
	return &GCP{
		recognize: func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return client.Recognize(ctx, req)
		},
		recorder: rec,
		close:    client.Close,
	}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (g *GCP) Available() error { return g.recorder.Available() }

func (g *GCP) Recognize(ctx context.Context, lang string) (string, error) {
	audio, err := g.recorder.Record(ctx)
	if err != nil {
		return "", err
	}
	if lang == "" {
		lang = "es-ES"
	}
	resp, err := g.recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            sampleRate,
			LanguageCode:               lang,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var parts []string
	for _, r := range resp.GetResults() {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

// Close releases the API connection.
func (g *GCP) Close() error {
	if g.close == nil {
		return nil
	}
	return g.close()
}
