package test

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const LOCAL_DDB_PORT = 8000

// TableSpec describes an owner-partitioned table with a creation-time index.
type TableSpec struct {
	TableName string
	IdField   string
	IndexName string
}

func CreateTable(client *dynamodb.Client, spec TableSpec) (string, error) {
	keySchema := []types.KeySchemaElement{
		{
			AttributeName: aws.String("userId"),
			KeyType:       types.KeyTypeHash,
		},
		{
			AttributeName: aws.String(spec.IdField),
			KeyType:       types.KeyTypeRange,
		},
	}
	attributes := []types.AttributeDefinition{
		{
			AttributeName: aws.String("userId"),
			AttributeType: types.ScalarAttributeTypeS,
		},
		{
			AttributeName: aws.String(spec.IdField),
			AttributeType: types.ScalarAttributeTypeS,
		},
		{
			AttributeName: aws.String("createdAt"),
			AttributeType: types.ScalarAttributeTypeS,
		},
	}
	indexes := []types.LocalSecondaryIndex{
		{
			IndexName: aws.String(spec.IndexName),
			KeySchema: []types.KeySchemaElement{
				{
					AttributeName: aws.String("userId"),
					KeyType:       types.KeyTypeHash,
				},
				{
					AttributeName: aws.String("createdAt"),
					KeyType:       types.KeyTypeRange,
				},
			},
			Projection: &types.Projection{
				ProjectionType: types.ProjectionTypeAll,
			},
		},
	}
	output, err := client.CreateTable(context.TODO(), &dynamodb.CreateTableInput{
		TableName:             aws.String(spec.TableName),
		KeySchema:             keySchema,
		BillingMode:           types.BillingModePayPerRequest,
		AttributeDefinitions:  attributes,
		LocalSecondaryIndexes: indexes,
	})
	if err != nil {
		return "", err
	}
	waiter := dynamodb.NewTableExistsWaiter(client, func(tewo *dynamodb.TableExistsWaiterOptions) {
		tewo.LogWaitAttempts = true
	})
	_, err = waiter.WaitForOutput(context.TODO(), &dynamodb.DescribeTableInput{
		TableName: output.TableDescription.TableName,
	}, time.Second*5)
	return *output.TableDescription.TableName, err
}

func (l *LocalDynamoServer) CreateLocalClient() (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRetryMaxAttempts(10),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     "fake",
				SecretAccessKey: "fake",
				SessionToken:    "fake",
			}}),
	)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("http://localhost:%d", l.Port))
	}), nil
}

type LocalDynamoServer struct {
	Process *os.Process
	Port    int
}

// StartLocalServer launches DynamoDB Local from DYNAMODB_LOCAL_DIR. Tests are
// skipped when java or the jar is unavailable.
func StartLocalServer(port int, t *testing.T) *LocalDynamoServer {
	dir := os.Getenv("DYNAMODB_LOCAL_DIR")
	if dir == "" {
		t.Skip("DYNAMODB_LOCAL_DIR is not set, skipping local DynamoDB tests")
	}
	jar := filepath.Join(dir, "DynamoDBLocal.jar")
	if _, err := os.Stat(jar); err != nil {
		t.Skipf("DynamoDB Local jar not found: %s", err)
	}
	if _, err := exec.LookPath("java"); err != nil {
		t.Skip("java is not installed, skipping local DynamoDB tests")
	}
	cmd := exec.Command(
		"java", fmt.Sprintf("-Djava.library.path=%s", filepath.Join(dir, "DynamoDBLocal_lib")),
		"-jar", jar,
		"-port", strconv.Itoa(port),
		"-inMemory",
	)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Failed to start local DDB server: %s", err)
	}
	t.Cleanup(func() {
		if err := cmd.Process.Kill(); err != nil {
			t.Errorf("Failed to terminate local DDB server: %s", err)
		}
	})
	waitForPort(t, port)
	return &LocalDynamoServer{Port: port, Process: cmd.Process}
}

func waitForPort(t *testing.T, port int) {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", port), 200*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("Local DDB server did not listen on %d", port)
}
