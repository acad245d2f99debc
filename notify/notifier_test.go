package notify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestDispatcherDeliversInBackground(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := NewMockNotifier(ctrl)
	n.EXPECT().SendOTP(gomock.Any(), "555", 123456).Return(nil)
	n.EXPECT().PublishOrderEvent(gomock.Any(), RKOrderCreated, OrderEvent{OrderID: "o1"}).
		Return(errors.New("broker down"))

	d := NewDispatcher(n, 0)
	d.OTP("555", 123456)
	d.OrderEvent(RKOrderCreated, OrderEvent{OrderID: "o1"})
	d.Wait()
}

func TestLogNotifierNeverFails(t *testing.T) {
	var n Notifier = NewLog()
	if err := n.SendOTP(context.Background(), "555", 1); err != nil {
		t.Fatal(err)
	}
	if err := n.PublishOrderEvent(context.Background(), RKOrderCreated, OrderEvent{}); err != nil {
		t.Fatal(err)
	}
}
