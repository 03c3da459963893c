package generalutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"sync"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	log "github.com/sirupsen/logrus"
)

type GeneralUtilsInterface interface {
	HandleSignals() context.Context
	PrintCurrentRole(w io.Writer, roleARN, accountID, roleName, sessionName, region, expiration string)
}

type DefaultGeneralUtilsManager struct{}

func (g *DefaultGeneralUtilsManager) HandleSignals() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "Received termination signal: %v\n", sig)
		cancel()
	}()

	return ctx
}

func (d *DefaultGeneralUtilsManager) PrintCurrentRole(w io.Writer, roleARN, accountID, roleName, sessionName, region, expiration string) {
	fmt.Fprintf(w, `
AWS Session Details:
---------------------------------
Role ARN     : %s
Account Id   : %s
Role Name    : %s
Session Name : %s
Region       : %s
Expiration   : %s
---------------------------------
`, roleARN, accountID, roleName, sessionName, region, expiration)
}

func NewGeneralUtilsManager() GeneralUtilsInterface {
	return &DefaultGeneralUtilsManager{}
}

// Matches patterns like us-east-1, ap-southeast-2
var regionFormat = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]?)?-[a-z]+-\d+$`)

func isValidRegionFormat(region string) bool {
	return regionFormat.MatchString(region)
}

type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// RegionChecker validates region names against DescribeRegions, falling back
// to a format check when the API cannot be reached.
type RegionChecker struct {
	client EC2API

	mu    sync.RWMutex
	valid map[string]bool
}

func NewRegionChecker(client EC2API) *RegionChecker {
	return &RegionChecker{client: client}
}

func (c *RegionChecker) IsRegionValid(ctx context.Context, region string) bool {
	c.mu.RLock()
	if cached, exists := c.valid[region]; exists {
		c.mu.RUnlock()
		return cached
	}
	c.mu.RUnlock()

	if c.client == nil {
		return isValidRegionFormat(region)
	}

	output, err := c.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(true),
	})
	if err != nil {
		log.Debugf("DescribeRegions failed, checking region format only: %v", err)
		return isValidRegionFormat(region)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = make(map[string]bool, len(output.Regions))
	for _, r := range output.Regions {
		if r.RegionName != nil {
			c.valid[*r.RegionName] = true
		}
	}
	if !c.valid[region] {
		c.valid[region] = false
	}
	return c.valid[region]
}

// STS RoleSessionName constraint.
var validNameRegex = regexp.MustCompile(`^[\w+=,.@-]{2,64}$`)

func IsValidSessionName(name string) bool {
	return validNameRegex.MatchString(name)
}
