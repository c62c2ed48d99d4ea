package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/playlives/internal/config"
	"github.com/GlebRadaev/playlives/internal/events"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestWaitRunsClosersInReverse() {
	ctx, cancel := context.WithCancel(context.Background())
	var order []int
	s.app.closers = []func(){
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}

	cancel()
	s.Require().NoError(s.app.Wait(ctx, cancel))
	s.Equal([]int{2, 1}, order)
}

func (s *ApplicationSuite) TestNewPublisher() {
	publisher, err := newPublisher(&config.Config{})
	s.Require().NoError(err)
	s.IsType(events.LogPublisher{}, publisher)

	publisher, err = newPublisher(&config.Config{KafkaBroker: []string{"localhost:9092"}, EventsTopic: "playlives.events"})
	s.Require().NoError(err)
	s.Require().IsType(&events.KafkaPublisher{}, publisher)
	publisher.(*events.KafkaPublisher).Close()
}
