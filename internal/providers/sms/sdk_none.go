//go:build notwilio

package sms

// TwilioSDK reports that the binary was built without the Twilio SDK.
func TwilioSDK() (Factory, bool) {
	return nil, false
}
