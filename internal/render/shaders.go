package render

// Blade vertices carry (x, heightFrac); everything else arrives per
// instance. Continuous scale LOD happens here, driven by the engine's LOD
// parameter bundle, so chunk geometry never regenerates on movement.
const grassVertShader = `#version 410 core
layout (location = 0) in vec2 aBlade;     // x offset, height fraction
layout (location = 1) in vec3 aOffset;    // chunk-local position, y = ground height
layout (location = 2) in vec4 aMisc;      // scale, rotation, wind weight, color jitter
layout (location = 3) in float aBand;     // detail band 0..2

uniform mat4 uView;
uniform mat4 uProj;
uniform vec3 uChunkOrigin;
uniform vec2 uObserver;
uniform float uHighDist;
uniform float uMediumDist;
uniform float uTime;

out float vHeightFrac;
out float vJitter;
out float vFade;

void main() {
    float scale = aMisc.x;
    float rot = aMisc.y;
    float wind = aMisc.z;

    vec3 base = uChunkOrigin + aOffset;
    vec2 toObserver = base.xz - uObserver;
    float dist = length(toObserver);

    // continuous distance fade on top of the coarse per-chunk tiers
    float fade = 1.0 - smoothstep(uHighDist, uMediumDist * 1.6, dist);
    float heightScale = scale * mix(0.55, 1.0, fade);

    // thin far geometry by dropping high detail bands early
    if (aBand > 0.5 && fade < 0.35) heightScale = 0.0;
    if (aBand > 1.5 && fade < 0.65) heightScale = 0.0;

    float c = cos(rot);
    float s = sin(rot);
    vec2 local = vec2(aBlade.x * c, aBlade.x * s) * scale;

    float sway = sin(uTime * 1.7 + base.x * 0.35 + base.z * 0.23) * wind;
    float bend = sway * aBlade.y * aBlade.y * 0.25;

    vec3 pos = base + vec3(local.x + bend, aBlade.y * heightScale, local.y + bend * 0.4);
    gl_Position = uProj * uView * vec4(pos, 1.0);

    vHeightFrac = aBlade.y;
    vJitter = aMisc.w;
    vFade = fade;
}
`

const grassFragShader = `#version 410 core
in float vHeightFrac;
in float vJitter;
in float vFade;

out vec4 FragColor;

void main() {
    vec3 rootColor = vec3(0.05, 0.22, 0.03);
    vec3 tipColor = vec3(0.35, 0.62, 0.12);
    vec3 color = mix(rootColor, tipColor, vHeightFrac);
    color *= 0.85 + 0.3 * vJitter;
    FragColor = vec4(color, 1.0);
}
`
