package cognito

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// listUsersAPI is the part of the Cognito client AWSDirectory uses.
type listUsersAPI interface {
	ListUsers(ctx context.Context, params *cip.ListUsersInput, optFns ...func(*cip.Options)) (*cip.ListUsersOutput, error)
}

// AWSDirectory implements Directory using the AWS SDK v2.
type AWSDirectory struct {
	api        listUsersAPI
	userPoolID string
}

// NewAWSDirectory creates a directory for the given region and user pool.
func NewAWSDirectory(ctx context.Context, region, userPoolID string) (*AWSDirectory, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &AWSDirectory{
		api:        cip.NewFromConfig(cfg),
		userPoolID: userPoolID,
	}, nil
}

func (d *AWSDirectory) LookupUser(ctx context.Context, sub string) (UserProfile, error) {
	if sub == "" || strings.ContainsAny(sub, `"\`) {
		return UserProfile{}, fmt.Errorf("sub %q: %w", sub, ErrInvalidParameter)
	}

	out, err := d.api.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: aws.String(d.userPoolID),
		Filter:     aws.String(fmt.Sprintf("sub = %q", sub)),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return UserProfile{}, mapAWSError(err)
	}
	if len(out.Users) == 0 {
		return UserProfile{}, fmt.Errorf("sub %s: %w", sub, ErrUserNotFound)
	}

	return profileFromUser(out.Users[0]), nil
}

func profileFromUser(u types.UserType) UserProfile {
	p := UserProfile{
		Username: aws.ToString(u.Username),
		Enabled:  u.Enabled,
	}
	for _, attr := range u.Attributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			p.Sub = aws.ToString(attr.Value)
		case "email":
			p.Email = aws.ToString(attr.Value)
		}
	}
	return p
}

// mapAWSError converts AWS SDK errors to cognito sentinel errors.
func mapAWSError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("cognito: %w", err)
	}

	switch apiErr.ErrorCode() {
	case "UserNotFoundException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrUserNotFound)
	case "ResourceNotFoundException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrPoolNotFound)
	case "TooManyRequestsException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrTooManyRequests)
	case "NotAuthorizedException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrNotAuthorized)
	case "InvalidParameterException":
		return fmt.Errorf("%s: %w", apiErr.ErrorMessage(), ErrInvalidParameter)
	default:
		return fmt.Errorf("cognito %s: %w", apiErr.ErrorCode(), err)
	}
}

// Compile-time check: AWSDirectory implements Directory.
var _ Directory = (*AWSDirectory)(nil)
