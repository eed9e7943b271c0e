package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/config"
	"github.com/dmitrijs2005/contactdir/internal/filex"
	"github.com/dmitrijs2005/contactdir/internal/logging"
	"github.com/xuri/excelize/v2"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
	ExportS3   = "s3"
)

// ExportSink stores a CSV export somewhere and returns where it went.
type ExportSink interface {
	Name() string
	Store(ctx context.Context, csvData []byte) (string, error)
}

// ExportService downloads the directory export and hands it to a sink.
type ExportService interface {
	Export(ctx context.Context, format string) (string, error)
	// Formats lists the configured sinks in a stable order.
	Formats() []string
}

type exportService struct {
	client client.Client
	sinks  map[string]ExportSink
	log    logging.Logger
}

func NewExportService(c client.Client, log logging.Logger, sinks ...ExportSink) ExportService {
	m := make(map[string]ExportSink, len(sinks))
	for _, s := range sinks {
		m[s.Name()] = s
	}
	return &exportService{client: c, sinks: m, log: log}
}

func (s *exportService) Formats() []string {
	out := make([]string, 0, len(s.sinks))
	for name := range s.sinks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *exportService) Export(ctx context.Context, format string) (string, error) {
	if format == "" {
		format = ExportCSV
	}
	sink, ok := s.sinks[format]
	if !ok {
		return "", fmt.Errorf("export format %q not available (have %s)", format, strings.Join(s.Formats(), ", "))
	}

	data, err := s.client.Export(ctx)
	if err != nil {
		return "", err
	}

	loc, err := sink.Store(ctx, data)
	if err != nil {
		return "", fmt.Errorf("export to %s: %w", format, err)
	}
	s.log.Info(ctx, "export stored", "format", format, "location", loc, "bytes", len(data))
	return loc, nil
}

// CSVFileSink writes the export unchanged to Dir/contacts.csv.
type CSVFileSink struct {
	Dir string
}

func (CSVFileSink) Name() string { return ExportCSV }

func (s CSVFileSink) Store(_ context.Context, csvData []byte) (string, error) {
	return filex.WriteFile(s.Dir, "contacts.csv", csvData)
}

// XLSXSink converts the export into a single-sheet workbook at
// Dir/contacts.xlsx. The first CSV row becomes a frozen bold header.
type XLSXSink struct {
	Dir string
}

const xlsxSheet = "Contacts"

func (XLSXSink) Name() string { return ExportXLSX }

func (s XLSXSink) Store(_ context.Context, csvData []byte) (string, error) {
	data, err := csvToXLSX(csvData)
	if err != nil {
		return "", err
	}
	return filex.WriteFile(s.Dir, "contacts.xlsx", data)
}

func csvToXLSX(csvData []byte) ([]byte, error) {
	r := csv.NewReader(bytes.NewReader(csvData))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if len(records) > 0 && len(records[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(records[0]), 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(xlsxSheet, "A1", last, headerStyle); err != nil {
			return nil, fmt.Errorf("header style: %w", err)
		}
		if err := f.SetPanes(xlsxSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("freeze header: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// objectPutter is the part of *s3.Client the sink needs.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Sink uploads the export to a bucket as <prefix>contacts-<utc time>.csv.
type S3Sink struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Sink builds an S3 client from cfg. Static credentials are used when
// both keys are set, the default AWS chain otherwise. A custom endpoint
// (MinIO and friends) switches to path-style addressing.
func NewS3Sink(ctx context.Context, cfg config.S3Config) (*S3Sink, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	c := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Sink{client: c, bucket: cfg.Bucket, prefix: cfg.Prefix, now: time.Now}, nil
}

func (s *S3Sink) Name() string { return ExportS3 }

func (s *S3Sink) Store(ctx context.Context, csvData []byte) (string, error) {
	key := s.prefix + "contacts-" + s.now().UTC().Format("20060102T150405Z") + ".csv"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(csvData),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}
