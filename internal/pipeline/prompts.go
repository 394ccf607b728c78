package pipeline

import (
	"fmt"

	"github.com/dvloznov/video-insights/internal/schema"
)

// jsonDiscipline is sent ahead of the rating battery on every request. The
// response schema already constrains the output, but the model still needs
// telling not to wrap the JSON in markdown or prose.
const jsonDiscipline = `Analyze the video and provide your response strictly in valid JSON format as per the provided schema, without any additional text, explanations, or formatting symbols like asterisks. Do not include markdown or any other markup language in your response. If a value is not applicable or cannot be determined, use 'N/A'.`

const surpriseGuidelines = `Something is unexpected or surprising if it is inconsistent with our background beliefs or violates our expectations.

Consider the following guidelines:
- A thing we usually expect to happen given X, but something else happens instead that surprises us and violates our expectation.
- A video or a scene begins with X, and changes or ends surprisingly or unexpectedly with Y.
- Several surprising or unexpected things can happen during the video, but focus only on the most surprising or unexpected one.
- The way someone behaves that is unusual or violates our expectations in terms of their social role or stereotype.
- A social convention that is violated and not expected.
- The facial expressions and emotional states of the people who appear in the video, and their unexpected changes.
- The emotional valence changes in the video, for example from Positive to Negative or from Negative to Positive.

Rate on a scale of 1 to 5 how much the video is surprising or violates our expectations or beliefs. The higher the confidence in what we expect, and the more this expectation is violated, the higher the rating.

Levels of surprise:
    1 - Not surprising at all
    2 - Slightly surprising
    3 - Moderately surprising
    4 - Very surprising
    5 - Extremely surprising`

const timecodePrompt = `Provide the timecode (MM:SS from the start of the video) at which the most unexpected thing happens. Just provide the timecode.`

const durationPrompt = `Provide the duration in seconds until the unexpected thing happens in the video. Just provide the number in seconds.`

const expectationDescriptionPrompt = `Provide a very short sentence explaining the expectation or what we expect in the video.`

const violationDescriptionPrompt = `Provide a very short sentence explaining how and why the expectation, belief, or social role was violated in the video.`

const expectationViolationPrompt = `Provide a very short sentence explaining the expectation or what we expect in the video, and after that, provide a very short sentence explaining how and why the expectation, belief, or social role was violated in the video.`

const expectationProbabilityPrompt = `Estimate the prior probability, between 0.0 and 1.0, that the expected outcome would have happened. Just provide the number.`

const emotionalIntensityPrompt = `Rate the emotional intensity of the video content on a scale from 1 to 5.

Levels of emotional intensity:
    1 - Not emotional at all
    2 - Slightly emotional
    3 - Moderately emotional
    4 - Very emotional
    5 - Extremely emotional`

const positivityPrompt = `Rate the positivity of the video content on a scale from 1 to 5.

Levels of positivity:
    1 - Not positive at all
    2 - Slightly positive
    3 - Moderately positive
    4 - Very positive
    5 - Extremely positive`

const negativityPrompt = `Rate the negativity of the video content on a scale from 1 to 5.

Levels of negativity:
    1 - Not negative at all
    2 - Slightly negative
    3 - Moderately negative
    4 - Very negative
    5 - Extremely negative`

const expectedDesirabilityPrompt = `Rate the desirability of what was initially expected to happen in the video (before any violation or surprise) on a scale from 1 to 5.

Levels of desirability for the expected outcome:
    1 - Very undesirable (we strongly hope it doesn't happen)
    2 - Somewhat undesirable
    3 - Neutral
    4 - Somewhat desirable
    5 - Very desirable (we strongly hope it happens)`

const unexpectedDesirabilityPrompt = `Rate the desirability of the unexpected thing that happened (after the violation or surprise) on a scale from 1 to 5.

Levels of desirability for the unexpected outcome:
    1 - Very undesirable (strongly negative or unwanted outcome)
    2 - Somewhat undesirable
    3 - Neutral
    4 - Somewhat desirable
    5 - Very desirable (strongly positive or wanted outcome)`

const spatialClosenessPrompt = `Rate how emotionally and spatially close the unexpected event, element, object, or behaviour would feel to an average person watching the video, on a scale from 1 to 5.

Levels of closeness to the average viewer:
    1 - Very distant/unrelatable
    2 - Somewhat distant
    3 - Moderately relatable
    4 - Very relatable
    5 - Extremely close/highly relatable

Consider how likely an average person could experience something similar, how emotionally relatable the content is to everyday life, and whether it involves universal human experiences or emotions.`

const cognitiveInterruptionPrompt = `Rate the degree to which the unexpected event interrupts ongoing cognitive or emotional processes on a scale from 1 to 5.

Levels of interruption:
    1 - Minimal interruption (barely noticeable shift in thoughts or feelings)
    2 - Slight interruption
    3 - Moderate interruption
    4 - Strong interruption
    5 - Complete interruption (totally derails all ongoing thoughts/feelings)`

const perceivedRealismPrompt = `Rate the perceived realism of the unexpected or surprising event, element, object, or behaviour on a scale from 1 to 5.

Levels of realism:
    1 - Clearly artificial/staged
    2 - Somewhat staged
    3 - Mixed authenticity
    4 - Mostly authentic
    5 - Completely authentic/real

Consider how naturally the event unfolds, whether it appears staged or spontaneous, and whether special effects or editing are apparent.`

const sexualContentPrompt = `Rate the extent to which the video contains sexual content or exposed body parts on a scale from 1 to 5.

1 means no exposed body parts and absolutely no sexual content.
5 means highly exposed body parts and/or explicit sexual content.

Guidelines:
- The more exposed the body (male or female), the higher the rating.
- Revealing clothing (e.g., swimsuits, underwear) increases the rating.
- Any sexually suggestive behavior or content increases the rating.

Levels:
    1 - No exposure/sexual content
    2 - Minimal exposure/subtle content
    3 - Moderate exposure/suggestive content
    4 - Significant exposure/obvious content
    5 - Extreme exposure/explicit content`

var batteryV1 = []string{
	surpriseGuidelines,
	emotionalIntensityPrompt,
	timecodePrompt,
	expectationDescriptionPrompt,
	violationDescriptionPrompt,
	expectationProbabilityPrompt,
	sexualContentPrompt,
}

var batteryV2 = []string{
	surpriseGuidelines,
	durationPrompt,
	expectationViolationPrompt,
	emotionalIntensityPrompt,
	positivityPrompt,
	negativityPrompt,
	expectedDesirabilityPrompt,
	unexpectedDesirabilityPrompt,
	spatialClosenessPrompt,
	cognitiveInterruptionPrompt,
	perceivedRealismPrompt,
	sexualContentPrompt,
}

// PromptBattery returns the ordered rating instructions for a schema
// generation: one prompt per rated dimension, led by the shared surprise
// guidelines.
func PromptBattery(sch schema.Schema) ([]string, error) {
	switch sch.Version {
	case schema.V1.Version:
		return batteryV1, nil
	case schema.V2.Version:
		return batteryV2, nil
	default:
		return nil, fmt.Errorf("PromptBattery: no battery for schema version %q", sch.Version)
	}
}
