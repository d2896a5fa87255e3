package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/dustin/go-humanize"
)

const (
	S3BackupScript  = "s3-backup"
	S3EncryptScript = "s3-encrypt"
	S3UploadScript  = "s3-upload"
)

// S3BackupOptions: Source contém objetos S3 baixados em base64; Dest recebe os PNGs.
type S3BackupOptions struct {
	Source string
	Dest   string
}

// S3EncryptOptions são as entradas do s3-encrypt.
type S3EncryptOptions struct {
	Region string
	// BucketNames is a newline separated list.
	BucketNames string
	KMSKeyID    string
	OutputDir   string
}

// S3UploadOptions são as entradas do s3-upload.
type S3UploadOptions struct {
	Region    string
	Account   string
	Repo      string
	Submodule bool
	SSH       bool
	Branch    string
	RepoDir   string
	File      string
	OutputDir string
}

// StorageUseCase reúne os scripts de S3: conversão de backups, criptografia e upload.
type StorageUseCase struct {
	scriptBase
}

// NewStorageUseCase creates a new storage use case.
func NewStorageUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *StorageUseCase {
	return &StorageUseCase{scriptBase: newScriptBase(clients, exportRepo, console, config)}
}

// Backup converte cada arquivo base64 de Source em PNG, espelhando a árvore em Dest.
// Arquivos que não decodificam são registrados e ignorados.
func (uc *StorageUseCase) Backup(ctx context.Context, opts S3BackupOptions) error {
	return uc.run(S3BackupScript, ModeBase, "", nil, func() error {
		if err := requireArgs("source", opts.Source, "dest", opts.Dest); err != nil {
			return err
		}

		var files []string
		err := filepath.WalkDir(opts.Source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return ctx.Err()
		})
		if err != nil {
			return fmt.Errorf("error walking source directory '%s': %w", opts.Source, err)
		}

		converted := 0
		for _, source := range files {
			data, err := decodeImageFile(source)
			if err != nil {
				uc.console.LogError("Create image ERROR: '%v', for source file: '%s'", err, source)
				continue
			}
			uc.console.LogInfo("Created image for source file: '%s'", source)

			dest := strings.Replace(source, filepath.Clean(opts.Source), filepath.Clean(opts.Dest), 1) + ".png"
			if err := uc.export.WriteFile(dest, data); err != nil {
				uc.console.LogError("Create image ERROR: '%v', for source file: '%s'", err, source)
				continue
			}
			uc.console.LogInfo("Saved image for source file: '%s'", dest)
			converted++
		}
		uc.console.LogSuccess("Converted %s of %s files to PNG", humanize.Comma(int64(converted)), humanize.Comma(int64(len(files))))
		return nil
	})
}

// decodeImageFile lê um arquivo base64 (quebras de linha permitidas) e devolve a imagem em PNG.
func decodeImageFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(string(raw)), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(decoded))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// splitBucketNames separa a lista de buckets por linha, descartando linhas vazias.
func splitBucketNames(names string) []string {
	var buckets []string
	for _, line := range strings.Split(names, "\n") {
		if b := strings.TrimSpace(line); b != "" {
			buckets = append(buckets, b)
		}
	}
	return buckets
}

// Encrypt sets SSE-KMS default encryption with a bucket key on every bucket.
// The first failing bucket aborts the run.
func (uc *StorageUseCase) Encrypt(ctx context.Context, opts S3EncryptOptions) error {
	results := entity.NewResults(S3EncryptScript, entity.ServiceKMS, entity.ServiceS3)

	return uc.run(S3EncryptScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "bucket-names", opts.BucketNames, "kms-key-id", opts.KMSKeyID); err != nil {
			return err
		}
		if err := uc.checkKey(ctx, opts.Region, opts.KMSKeyID, results); err != nil {
			return err
		}

		client, err := uc.clients.S3(ctx, opts.Region)
		if err != nil {
			return err
		}
		uc.console.LogInfo("S3 Putting Bucket Encryption, using KMS Master Key ID: %s", opts.KMSKeyID)

		responses := map[string]*s3.PutBucketEncryptionOutput{}
		results.Set(entity.ServiceS3, "put_bucket_encryption", responses)
		for n, bucket := range splitBucketNames(opts.BucketNames) {
			uc.console.LogInfo("S3 Putting Bucket Encryption, for S3 bucket (%d): %s", n+1, bucket)
			out, err := client.PutBucketEncryption(ctx, &s3.PutBucketEncryptionInput{
				Bucket: aws.String(bucket),
				ServerSideEncryptionConfiguration: &s3types.ServerSideEncryptionConfiguration{
					Rules: []s3types.ServerSideEncryptionRule{{
						ApplyServerSideEncryptionByDefault: &s3types.ServerSideEncryptionByDefault{
							SSEAlgorithm:   s3types.ServerSideEncryptionAwsKms,
							KMSMasterKeyID: aws.String(opts.KMSKeyID),
						},
						BucketKeyEnabled: aws.Bool(true),
					}},
				},
			})
			if err != nil {
				results.SetError(entity.ServiceS3, "put_bucket_encryption", err)
				return fmt.Errorf("error putting encryption on S3 bucket '%s': %w", bucket, err)
			}
			responses[bucket] = out
			uc.console.LogSuccess("S3 Put Bucket Encryption successful response")
		}
		return nil
	})
}

// checkKey confirma que a chave existe e está habilitada antes de tocar nos buckets.
func (uc *StorageUseCase) checkKey(ctx context.Context, region, keyID string, results *entity.Results) error {
	client, err := uc.clients.KMS(ctx, region)
	if err != nil {
		return err
	}
	out, err := client.DescribeKey(ctx, &kms.DescribeKeyInput{KeyId: aws.String(keyID)})
	if err != nil {
		results.SetError(entity.ServiceKMS, "describe_key", err)
		return fmt.Errorf("error describing KMS key '%s': %w", keyID, err)
	}
	results.Set(entity.ServiceKMS, "describe_key", out)

	if out.KeyMetadata == nil || out.KeyMetadata.KeyState != kmstypes.KeyStateEnabled {
		state := kmstypes.KeyState("")
		if out.KeyMetadata != nil {
			state = out.KeyMetadata.KeyState
		}
		return fmt.Errorf("%w: '%s' (state: %s)", types.ErrKMSKeyNotEnabled, keyID, state)
	}
	return nil
}

// Upload envia um arquivo do repositório para o bucket da região, criando o bucket privado
// quando ele ainda não existe. Com SSH só grava a URL do repositório.
func (uc *StorageUseCase) Upload(ctx context.Context, opts S3UploadOptions) error {
	if opts.SSH {
		return uc.run(S3UploadScript, ModeRepo, opts.OutputDir, nil, func() error {
			if err := requireArgs("repo", opts.Repo); err != nil {
				return err
			}
			return uc.writeGitRepo(S3UploadScript, opts.Repo, opts.OutputDir)
		})
	}

	results := entity.NewResults(S3UploadScript, entity.ServiceS3)
	return uc.run(S3UploadScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("repo", opts.Repo, "region", opts.Region, "branch", opts.Branch,
			"file", opts.File); err != nil {
			return err
		}
		account := opts.Account
		if account == "" {
			id, err := uc.clients.AccountID(ctx)
			if err != nil {
				return err
			}
			account = id
		}

		body, err := os.ReadFile(filepath.Join(opts.RepoDir, opts.File))
		if err != nil {
			return fmt.Errorf("error reading file to upload: %w", err)
		}
		client, err := uc.clients.S3(ctx, opts.Region)
		if err != nil {
			return err
		}

		bucket := entity.UploadBucketName(opts.Repo, opts.Region, opts.Submodule)
		key := entity.UploadObjectKey(opts.Repo, opts.Branch, opts.File, opts.Submodule)
		head, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket:              aws.String(bucket),
			ExpectedBucketOwner: aws.String(account),
		})
		if err != nil {
			results.SetError(entity.ServiceS3, "head_bucket", err)
			uc.console.LogWarning("S3 Head Bucket ERROR, will create a new S3 bucket: %s", bucket)
			if err := uc.createBucket(ctx, client, bucket, opts.Region, account, results); err != nil {
				return err
			}
		} else {
			results.Set(entity.ServiceS3, "head_bucket", head)
			uc.console.LogInfo("S3 Head Bucket successful response")
		}

		out, err := client.PutObject(ctx, &s3.PutObjectInput{
			ACL:                 s3types.ObjectCannedACLBucketOwnerFullControl,
			Body:                bytes.NewReader(body),
			Bucket:              aws.String(bucket),
			ChecksumAlgorithm:   s3types.ChecksumAlgorithmSha256,
			Key:                 aws.String(key),
			StorageClass:        s3types.StorageClassStandard,
			BucketKeyEnabled:    aws.Bool(false),
			ExpectedBucketOwner: aws.String(account),
		})
		if err != nil {
			results.SetError(entity.ServiceS3, "put_object", err)
			return fmt.Errorf("error putting object 's3://%s/%s': %w", bucket, key, err)
		}
		results.Set(entity.ServiceS3, "put_object", out)
		uc.console.LogSuccess("Uploaded %s to: s3://%s/%s", humanize.Bytes(uint64(len(body))), bucket, key)
		return nil
	})
}

func (uc *StorageUseCase) createBucket(ctx context.Context, client repository.S3API, bucket, region, account string, results *entity.Results) error {
	input := &s3.CreateBucketInput{
		ACL:                        s3types.BucketCannedACLPrivate,
		Bucket:                     aws.String(bucket),
		ObjectLockEnabledForBucket: aws.Bool(false),
		ObjectOwnership:            s3types.ObjectOwnershipObjectWriter,
	}
	// us-east-1 rejeita LocationConstraint explícito.
	if region != entity.DefaultRegion {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}
	created, err := client.CreateBucket(ctx, input)
	if err != nil {
		results.SetError(entity.ServiceS3, "create_bucket", err)
		return fmt.Errorf("error creating S3 bucket '%s': %w", bucket, err)
	}
	results.Set(entity.ServiceS3, "create_bucket", created)
	uc.console.LogSuccess("S3 Create Bucket successful response")

	block, err := client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket:            aws.String(bucket),
		ChecksumAlgorithm: s3types.ChecksumAlgorithmSha256,
		PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(true),
			RestrictPublicBuckets: aws.Bool(true),
		},
		ExpectedBucketOwner: aws.String(account),
	})
	if err != nil {
		results.SetError(entity.ServiceS3, "put_public_access_block", err)
		return fmt.Errorf("error blocking public access on S3 bucket '%s': %w", bucket, err)
	}
	results.Set(entity.ServiceS3, "put_public_access_block", block)
	uc.console.LogInfo("S3 Put Public Access Block: ALL")
	return nil
}
