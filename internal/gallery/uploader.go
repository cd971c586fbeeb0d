package gallery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/giovanabeautify/salon-scheduler/internal/config"
)

// maxWidth limita as fotos do portfólio; acima disso a imagem é
// redimensionada mantendo a proporção.
const maxWidth = 1280

const webpQuality = 82

type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewUploader monta o cliente S3 com credenciais estáticas do ambiente.
// Devolve nil quando o bucket não está configurado; a galeria fica
// desativada sem derrubar o resto da API.
func NewUploader(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKey,
				cfg.S3SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Uploader{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
	}, nil
}

// Upload decodifica a imagem, reduz para o tamanho de exibição,
// converte para webp e grava no bucket. Devolve a chave do objeto e a
// URL pública.
func (u *Uploader) Upload(ctx context.Context, r io.Reader) (string, string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	img := Resize(src, maxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", "", fmt.Errorf("encode webp: %w", err)
	}

	key := "trabalhos/" + uuid.NewString() + ".webp"

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        &buf,
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}

	return key, u.baseURL + "/" + key, nil
}

// Resize reduz a imagem para caber em width, mantendo a proporção.
// Imagens menores passam direto.
func Resize(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() <= width {
		return src
	}

	h := b.Dy() * width / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
